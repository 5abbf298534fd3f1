package plantdex

import (
	"context"
	"fmt"
	"time"
)

// PlantingService manages plantings on map layers.
type PlantingService struct {
	svc plantingUseCase
	obs *observer
}

// Find returns every planting matching filter, ordered by id.
func (s *PlantingService) Find(ctx context.Context, filter PlantingFilter) (_ []Planting, err error) {
	start := time.Now()
	defer func() { s.obs.observe(resourcePlantings, "find", start, err) }()

	res, err := s.svc.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find plantings: %w", err)
	}
	return res, nil
}

// Create stores a new planting. Zero scales are rejected; pass 1 for unscaled.
func (s *PlantingService) Create(ctx context.Context, d PlantingDraft) (_ Planting, err error) {
	start := time.Now()
	defer func() { s.obs.observe(resourcePlantings, "create", start, err) }()

	p, err := s.svc.Create(ctx, d)
	if err != nil {
		return Planting{}, fmt.Errorf("create planting: %w", err)
	}
	return p, nil
}

// Update applies the non-nil fields of patch.
func (s *PlantingService) Update(ctx context.Context, id int64, patch PlantingPatch) (_ Planting, err error) {
	start := time.Now()
	defer func() { s.obs.observe(resourcePlantings, "update", start, err) }()

	p, err := s.svc.Update(ctx, id, patch)
	if err != nil {
		return Planting{}, fmt.Errorf("update planting %d: %w", id, err)
	}
	return p, nil
}

// Delete removes a planting.
func (s *PlantingService) Delete(ctx context.Context, id int64) (err error) {
	start := time.Now()
	defer func() { s.obs.observe(resourcePlantings, "delete", start, err) }()

	if err = s.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete planting %d: %w", id, err)
	}
	return nil
}
