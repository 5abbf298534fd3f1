package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/plantdex/internal/db"
)

func newTestPool(t *testing.T, threshold float64) *db.Pool {
	t.Helper()
	return OpenForTest(t, threshold)
}

type plantRow struct {
	name     string
	commonEN []string
	edible   *string
}

func seedPlants(t *testing.T, pool *db.Pool, rows ...plantRow) {
	t.Helper()
	ctx := context.Background()
	conn, err := pool.Conn(ctx)
	require.NoError(t, err)
	defer conn.Close()

	d := pool.Dialect()
	for _, r := range rows {
		_, err := conn.ExecContext(ctx,
			"INSERT INTO plants (unique_name, common_name_en, edible_uses_en) VALUES (?, ?, ?)",
			r.name, d.ArrayValue(r.commonEN), r.edible)
		require.NoError(t, err)
	}
}

type rankedName struct {
	ID   int64
	Name string
	Rank float64
}

func scanRanked(_ db.Dialect, row db.Scanner) (rankedName, error) {
	var r rankedName
	err := row.Scan(&r.ID, &r.Name, &r.Rank)
	return r, err
}

func scanName(_ db.Dialect, row db.Scanner) (rankedName, error) {
	var r rankedName
	err := row.Scan(&r.ID, &r.Name)
	return r, err
}
