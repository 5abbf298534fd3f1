package plantdex

import (
	"context"
	"fmt"
	"time"
)

// PlantService searches the plant catalog.
type PlantService struct {
	svc        plantUseCase
	pagination pagination
	obs        *observer
}

// Search ranks plants by trigram similarity of term against their unique and
// common names, best first. Ties are broken by id. An empty term is rejected.
func (s *PlantService) Search(ctx context.Context, term string, pageNum, perPage int) (_ ScoredPlantPage, err error) {
	start := time.Now()
	defer func() { s.obs.observe(resourcePlants, "search", start, err) }()

	params, err := s.pagination.parameters(pageNum, perPage)
	if err != nil {
		return ScoredPlantPage{}, err
	}
	res, err := s.svc.Search(ctx, term, params)
	if err != nil {
		return ScoredPlantPage{}, fmt.Errorf("search plants: %w", err)
	}
	return res, nil
}

// Find lists plants whose unique name contains name, case-insensitively.
// An empty name lists the whole catalog ordered by unique name.
func (s *PlantService) Find(ctx context.Context, name string, pageNum, perPage int) (_ PlantPage, err error) {
	start := time.Now()
	defer func() { s.obs.observe(resourcePlants, "find", start, err) }()

	params, err := s.pagination.parameters(pageNum, perPage)
	if err != nil {
		return PlantPage{}, err
	}
	var filter *string
	if name != "" {
		filter = &name
	}
	res, err := s.svc.Find(ctx, filter, params)
	if err != nil {
		return PlantPage{}, fmt.Errorf("find plants: %w", err)
	}
	return res, nil
}

// Get returns one plant by id.
func (s *PlantService) Get(ctx context.Context, id int64) (_ Plant, err error) {
	start := time.Now()
	defer func() { s.obs.observe(resourcePlants, "get", start, err) }()

	p, err := s.svc.FindByID(ctx, id)
	if err != nil {
		return Plant{}, fmt.Errorf("get plant %d: %w", id, err)
	}
	return p, nil
}
