// Package planting reads and writes plantings through the relational store.
package planting

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/plantdex/internal/db"
	"github.com/kailas-cloud/plantdex/internal/db/query"
	"github.com/kailas-cloud/plantdex/internal/domain"
	domplanting "github.com/kailas-cloud/plantdex/internal/domain/planting"
)

var columns = []string{
	domplanting.ColID,
	domplanting.ColLayerID,
	domplanting.ColPlantID,
	domplanting.ColX,
	domplanting.ColY,
	domplanting.ColWidth,
	domplanting.ColHeight,
	domplanting.ColRotation,
	domplanting.ColScaleX,
	domplanting.ColScaleY,
}

// Repo implements usecase/planting.Repository.
type Repo struct {
	exec *db.Executor
}

// New creates a planting repository.
func New(exec *db.Executor) *Repo {
	return &Repo{exec: exec}
}

// Find lists plantings matching every set parameter, ordered by id.
func (r *Repo) Find(ctx context.Context, params domplanting.SearchParameters) ([]domplanting.Planting, error) {
	var filters []query.Predicate
	if params.PlantID != nil {
		filters = append(filters, query.Eq(domplanting.ColPlantID, *params.PlantID))
	}
	if params.LayerID != nil {
		filters = append(filters, query.Eq(domplanting.ColLayerID, *params.LayerID))
	}
	stmt, err := query.From(domplanting.Table).
		Columns(columns...).
		Where(query.And(filters...)).
		OrderBy(query.Asc(domplanting.ColID)).
		Build(r.exec.Dialect())
	if err != nil {
		return nil, fmt.Errorf("build plantings query: %w", err)
	}
	items, err := db.List(ctx, r.exec, domplanting.Table, stmt, scanPlanting)
	if err != nil {
		return nil, fmt.Errorf("find plantings: %w", err)
	}
	return items, nil
}

// Create stores a validated draft.
func (r *Repo) Create(ctx context.Context, d domplanting.Draft) (domplanting.Planting, error) {
	stmt, err := query.Insert(r.exec.Dialect(), domplanting.Table,
		columns[1:],
		[]any{d.LayerID, d.PlantID, d.X, d.Y, d.Width, d.Height, d.Rotation, d.ScaleX, d.ScaleY},
		columns...,
	)
	if err != nil {
		return domplanting.Planting{}, fmt.Errorf("build planting insert: %w", err)
	}
	p, err := db.One(ctx, r.exec, domplanting.Table, db.OpInsert, stmt, scanPlanting)
	if err != nil {
		return domplanting.Planting{}, fmt.Errorf("create planting: %w", err)
	}
	return p, nil
}

// Update applies a validated patch. A missing planting yields domain.ErrNotFound.
func (r *Repo) Update(ctx context.Context, id int64, patch domplanting.Patch) (domplanting.Planting, error) {
	cols, vals := patch.Columns()
	if len(cols) == 0 {
		return domplanting.Planting{}, domain.NewInvalidInput("patch", "at least one field must be provided")
	}
	stmt, err := query.Update(r.exec.Dialect(), domplanting.Table, cols, vals,
		query.Eq(domplanting.ColID, id), columns...)
	if err != nil {
		return domplanting.Planting{}, fmt.Errorf("build planting update: %w", err)
	}
	p, err := db.One(ctx, r.exec, domplanting.Table, db.OpUpdate, stmt, scanPlanting)
	if err != nil {
		return domplanting.Planting{}, fmt.Errorf("update planting %d: %w", id, err)
	}
	return p, nil
}

// Delete removes a planting. A missing planting yields domain.ErrNotFound.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	stmt, err := query.Delete(r.exec.Dialect(), domplanting.Table, query.Eq(domplanting.ColID, id))
	if err != nil {
		return fmt.Errorf("build planting delete: %w", err)
	}
	n, err := r.exec.Exec(ctx, domplanting.Table, db.OpDelete, stmt)
	if err != nil {
		return fmt.Errorf("delete planting %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete planting %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanPlanting(_ db.Dialect, row db.Scanner) (domplanting.Planting, error) {
	var p domplanting.Planting
	err := row.Scan(&p.ID, &p.LayerID, &p.PlantID, &p.X, &p.Y, &p.Width, &p.Height,
		&p.Rotation, &p.ScaleX, &p.ScaleY)
	return p, err
}
