package gardenmap

import (
	"context"

	dommap "github.com/kailas-cloud/plantdex/internal/domain/gardenmap"
	"github.com/kailas-cloud/plantdex/internal/domain/page"
)

// Repository defines the storage contract for maps.
type Repository interface {
	Find(ctx context.Context, params dommap.SearchParameters, pp page.Parameters) (page.Page[dommap.Map], error)
	FindByID(ctx context.Context, id int64) (dommap.Map, error)
	Create(ctx context.Context, d dommap.Draft) (dommap.Map, error)
}
