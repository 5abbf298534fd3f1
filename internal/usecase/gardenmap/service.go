// Package gardenmap lists and creates garden maps.
package gardenmap

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/plantdex/internal/domain"
	dommap "github.com/kailas-cloud/plantdex/internal/domain/gardenmap"
	"github.com/kailas-cloud/plantdex/internal/domain/page"
)

// Service handles map listing, lookup and creation.
type Service struct {
	repo Repository
}

// New creates a map service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Find returns a page of maps matching every set parameter.
func (s *Service) Find(
	ctx context.Context, params dommap.SearchParameters, pp page.Parameters,
) (page.Page[dommap.Map], error) {
	if err := pp.Validate(); err != nil {
		return page.Page[dommap.Map]{}, err
	}
	if params.Privacy != nil && !params.Privacy.Valid() {
		return page.Page[dommap.Map]{}, domain.NewInvalidInput("privacy", fmt.Sprintf("unknown value %q", *params.Privacy))
	}
	res, err := s.repo.Find(ctx, params, pp)
	if err != nil {
		return page.Page[dommap.Map]{}, fmt.Errorf("find maps: %w", err)
	}
	return res, nil
}

// FindByID returns one map or domain.ErrNotFound.
func (s *Service) FindByID(ctx context.Context, id int64) (dommap.Map, error) {
	if id <= 0 {
		return dommap.Map{}, domain.NewInvalidInput("map_id", "must be positive")
	}
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dommap.Map{}, fmt.Errorf("get map: %w", err)
	}
	return m, nil
}

// Create validates and stores a map.
func (s *Service) Create(ctx context.Context, d dommap.Draft) (dommap.Map, error) {
	d, err := dommap.New(d)
	if err != nil {
		return dommap.Map{}, err
	}
	m, err := s.repo.Create(ctx, d)
	if err != nil {
		return dommap.Map{}, fmt.Errorf("create map: %w", err)
	}
	return m, nil
}
