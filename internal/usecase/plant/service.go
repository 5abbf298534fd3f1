// Package plant orchestrates ranked plant search and filtered plant listing.
package plant

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/plantdex/internal/domain"
	"github.com/kailas-cloud/plantdex/internal/domain/page"
	domplant "github.com/kailas-cloud/plantdex/internal/domain/plant"
	"github.com/kailas-cloud/plantdex/internal/domain/search"
)

// Service handles plant search, find and lookup by id.
type Service struct {
	repo Repository
}

// New creates a plant service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search ranks plants by trigram similarity to raw, best first.
// An empty or whitespace-only raw string is rejected before the store is touched.
func (s *Service) Search(
	ctx context.Context, raw string, params page.Parameters,
) (page.Page[search.Scored[domplant.Plant]], error) {
	q, err := search.NewQuery(raw)
	if err != nil {
		return page.Page[search.Scored[domplant.Plant]]{}, err
	}
	if err := params.Validate(); err != nil {
		return page.Page[search.Scored[domplant.Plant]]{}, err
	}
	res, err := s.repo.Search(ctx, q, params)
	if err != nil {
		return page.Page[search.Scored[domplant.Plant]]{}, fmt.Errorf("search plants: %w", err)
	}
	return res, nil
}

// Find lists plants whose names contain name. A nil or blank name lists every plant by id.
func (s *Service) Find(ctx context.Context, name *string, params page.Parameters) (page.Page[domplant.Plant], error) {
	if err := params.Validate(); err != nil {
		return page.Page[domplant.Plant]{}, err
	}
	res, err := s.repo.Find(ctx, name, params)
	if err != nil {
		return page.Page[domplant.Plant]{}, fmt.Errorf("find plants: %w", err)
	}
	return res, nil
}

// FindByID returns one plant or domain.ErrNotFound.
func (s *Service) FindByID(ctx context.Context, id int64) (domplant.Plant, error) {
	if id <= 0 {
		return domplant.Plant{}, domain.NewInvalidInput("plant_id", "must be positive")
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domplant.Plant{}, fmt.Errorf("get plant: %w", err)
	}
	return p, nil
}
