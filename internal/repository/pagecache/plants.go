package pagecache

import (
	"context"
	"strings"

	"github.com/kailas-cloud/plantdex/internal/domain/page"
	"github.com/kailas-cloud/plantdex/internal/domain/plant"
	"github.com/kailas-cloud/plantdex/internal/domain/search"
)

// plantRepo is the decorated plant repository.
type plantRepo interface {
	Search(ctx context.Context, q search.Query, params page.Parameters) (page.Page[search.Scored[plant.Plant]], error)
	Find(ctx context.Context, name *string, params page.Parameters) (page.Page[plant.Plant], error)
	FindByID(ctx context.Context, id int64) (plant.Plant, error)
}

// Plants caches plant search and find pages. Lookups by id pass through.
type Plants struct {
	inner plantRepo
	cache *Cache
}

// NewPlants decorates inner with cache. A nil cache disables caching.
func NewPlants(inner plantRepo, cache *Cache) *Plants {
	return &Plants{inner: inner, cache: cache}
}

// Search returns a cached ranked page or runs the search.
func (p *Plants) Search(
	ctx context.Context, q search.Query, params page.Parameters,
) (page.Page[search.Scored[plant.Plant]], error) {
	key := Key{Op: "plants.search", Term: q.Term(), Page: params.Page(), PerPage: params.PerPage()}
	return Load(ctx, p.cache, key, func(ctx context.Context) (page.Page[search.Scored[plant.Plant]], error) {
		return p.inner.Search(ctx, q, params)
	})
}

// Find returns a cached page or runs the find.
func (p *Plants) Find(ctx context.Context, name *string, params page.Parameters) (page.Page[plant.Plant], error) {
	term := ""
	if name != nil {
		term = strings.TrimSpace(*name)
	}
	key := Key{Op: "plants.find", Term: term, Page: params.Page(), PerPage: params.PerPage()}
	return Load(ctx, p.cache, key, func(ctx context.Context) (page.Page[plant.Plant], error) {
		return p.inner.Find(ctx, name, params)
	})
}

// FindByID is not cached.
func (p *Plants) FindByID(ctx context.Context, id int64) (plant.Plant, error) {
	return p.inner.FindByID(ctx, id)
}
