// Package plantdex provides an embedded Go client for the plant catalog:
// trigram-ranked plant search, plantings and garden maps, backed by
// PostgreSQL (pg_trgm) or a local SQLite file.
//
// # Search
//
//	client, _ := plantdex.New(ctx, plantdex.WithSQLite("data/plantdex.db"))
//	defer client.Close()
//
//	res, _ := client.Plants().Search(ctx, "tomato", 1, 10)
//	for _, hit := range res.Items {
//	    fmt.Println(hit.Rank, hit.Item.UniqueName)
//	}
//
// # Maps and plantings
//
//	m, _ := client.Maps().Create(ctx, plantdex.MapDraft{
//	    Name:       "Backyard",
//	    OwnerID:    owner,
//	    ZoomFactor: 100,
//	})
//	p, _ := client.Plantings().Create(ctx, plantdex.PlantingDraft{
//	    LayerID: 1, PlantID: 42, Width: 10, Height: 10, ScaleX: 1, ScaleY: 1,
//	})
//
// Errors wrap the sentinels in errors.go; use errors.Is to classify them.
package plantdex
