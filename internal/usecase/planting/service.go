// Package planting manages plants placed on map layers.
package planting

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/plantdex/internal/domain"
	domplanting "github.com/kailas-cloud/plantdex/internal/domain/planting"
)

// Service handles planting CRUD.
type Service struct {
	repo Repository
}

// New creates a planting service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Find lists plantings matching every set parameter, ordered by id.
func (s *Service) Find(ctx context.Context, params domplanting.SearchParameters) ([]domplanting.Planting, error) {
	res, err := s.repo.Find(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("find plantings: %w", err)
	}
	if res == nil {
		res = []domplanting.Planting{}
	}
	return res, nil
}

// Create validates and stores a planting.
func (s *Service) Create(ctx context.Context, d domplanting.Draft) (domplanting.Planting, error) {
	d, err := domplanting.New(d)
	if err != nil {
		return domplanting.Planting{}, err
	}
	p, err := s.repo.Create(ctx, d)
	if err != nil {
		return domplanting.Planting{}, fmt.Errorf("create planting: %w", err)
	}
	return p, nil
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, id int64, patch domplanting.Patch) (domplanting.Planting, error) {
	if id <= 0 {
		return domplanting.Planting{}, domain.NewInvalidInput("planting_id", "must be positive")
	}
	patch, err := domplanting.NewPatch(patch)
	if err != nil {
		return domplanting.Planting{}, err
	}
	p, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return domplanting.Planting{}, fmt.Errorf("update planting: %w", err)
	}
	return p, nil
}

// Delete removes a planting.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.NewInvalidInput("planting_id", "must be positive")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete planting: %w", err)
	}
	return nil
}
