package planting

import (
	"context"

	domplanting "github.com/kailas-cloud/plantdex/internal/domain/planting"
)

// Repository defines the storage contract for plantings.
type Repository interface {
	Find(ctx context.Context, params domplanting.SearchParameters) ([]domplanting.Planting, error)
	Create(ctx context.Context, d domplanting.Draft) (domplanting.Planting, error)
	Update(ctx context.Context, id int64, patch domplanting.Patch) (domplanting.Planting, error)
	Delete(ctx context.Context, id int64) error
}
