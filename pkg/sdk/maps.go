package plantdex

import (
	"context"
	"fmt"
	"time"
)

// MapService manages garden maps.
type MapService struct {
	svc        mapUseCase
	pagination pagination
	obs        *observer
}

// Find returns a page of maps matching every set field of filter.
func (s *MapService) Find(ctx context.Context, filter MapFilter, pageNum, perPage int) (_ MapPage, err error) {
	start := time.Now()
	defer func() { s.obs.observe(resourceMaps, "find", start, err) }()

	params, err := s.pagination.parameters(pageNum, perPage)
	if err != nil {
		return MapPage{}, err
	}
	res, err := s.svc.Find(ctx, filter, params)
	if err != nil {
		return MapPage{}, fmt.Errorf("find maps: %w", err)
	}
	return res, nil
}

// Get returns one map by id.
func (s *MapService) Get(ctx context.Context, id int64) (_ Map, err error) {
	start := time.Now()
	defer func() { s.obs.observe(resourceMaps, "get", start, err) }()

	m, err := s.svc.FindByID(ctx, id)
	if err != nil {
		return Map{}, fmt.Errorf("get map %d: %w", id, err)
	}
	return m, nil
}

// Create stores a new map. An empty privacy defaults to private.
func (s *MapService) Create(ctx context.Context, d MapDraft) (_ Map, err error) {
	start := time.Now()
	defer func() { s.obs.observe(resourceMaps, "create", start, err) }()

	m, err := s.svc.Create(ctx, d)
	if err != nil {
		return Map{}, fmt.Errorf("create map: %w", err)
	}
	return m, nil
}
