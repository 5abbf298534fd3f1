package plant

import (
	"context"

	"github.com/kailas-cloud/plantdex/internal/domain/page"
	domplant "github.com/kailas-cloud/plantdex/internal/domain/plant"
	"github.com/kailas-cloud/plantdex/internal/domain/search"
)

// Repository defines the storage contract for plant lookups.
type Repository interface {
	Search(ctx context.Context, q search.Query, params page.Parameters) (page.Page[search.Scored[domplant.Plant]], error)
	Find(ctx context.Context, name *string, params page.Parameters) (page.Page[domplant.Plant], error)
	FindByID(ctx context.Context, id int64) (domplant.Plant, error)
}
