// Package gardenmap reads and writes garden maps through the relational store.
package gardenmap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/plantdex/internal/db"
	"github.com/kailas-cloud/plantdex/internal/db/query"
	dommap "github.com/kailas-cloud/plantdex/internal/domain/gardenmap"
	"github.com/kailas-cloud/plantdex/internal/domain/page"
)

var columns = []string{
	dommap.ColID,
	dommap.ColName,
	dommap.ColOwnerID,
	dommap.ColCreatedAt,
	dommap.ColIsInactive,
	dommap.ColPrivacy,
	dommap.ColDescription,
	dommap.ColZoomFactor,
}

// Repo implements usecase/gardenmap.Repository.
type Repo struct {
	exec *db.Executor
	now  func() time.Time
}

// New creates a map repository.
func New(exec *db.Executor) *Repo {
	return &Repo{exec: exec, now: time.Now}
}

// Find lists maps matching every set parameter. A name filter matches by
// substring and orders by name; otherwise maps are ordered by id.
func (r *Repo) Find(
	ctx context.Context, params dommap.SearchParameters, pp page.Parameters,
) (page.Page[dommap.Map], error) {
	var filters []query.Predicate
	byName := params.Name != nil && strings.TrimSpace(*params.Name) != ""
	if byName {
		filters = append(filters, query.Partial(strings.TrimSpace(*params.Name), query.Text(dommap.ColName)))
	}
	if params.IsInactive != nil {
		filters = append(filters, query.Eq(dommap.ColIsInactive, *params.IsInactive))
	}
	if params.Privacy != nil {
		filters = append(filters, query.Eq(dommap.ColPrivacy, *params.Privacy))
	}
	if params.OwnerID != nil {
		filters = append(filters, query.Eq(dommap.ColOwnerID, *params.OwnerID))
	}

	sel := query.From(dommap.Table).Columns(columns...).Where(query.And(filters...))
	if byName {
		sel = sel.OrderBy(query.Asc(dommap.ColName), query.Asc(dommap.ColID))
	} else {
		sel = sel.OrderBy(query.Asc(dommap.ColID))
	}

	p, err := db.Paginate(ctx, r.exec, sel, pp, scanMap)
	if err != nil {
		return page.Page[dommap.Map]{}, fmt.Errorf("find maps: %w", err)
	}
	return p, nil
}

// FindByID returns one map or domain.ErrNotFound.
func (r *Repo) FindByID(ctx context.Context, id int64) (dommap.Map, error) {
	stmt, err := query.From(dommap.Table).
		Columns(columns...).
		Where(query.Eq(dommap.ColID, id)).
		Build(r.exec.Dialect())
	if err != nil {
		return dommap.Map{}, fmt.Errorf("build map query: %w", err)
	}
	m, err := db.One(ctx, r.exec, dommap.Table, db.OpSelect, stmt, scanMap)
	if err != nil {
		return dommap.Map{}, fmt.Errorf("find map %d: %w", id, err)
	}
	return m, nil
}

// Create stores a validated draft, stamping its creation time.
func (r *Repo) Create(ctx context.Context, d dommap.Draft) (dommap.Map, error) {
	createdAt := r.now().UTC().Truncate(time.Microsecond)
	stmt, err := query.Insert(r.exec.Dialect(), dommap.Table,
		columns[1:],
		[]any{d.Name, d.OwnerID, createdAt, d.IsInactive, d.Privacy, d.Description, d.ZoomFactor},
		columns...,
	)
	if err != nil {
		return dommap.Map{}, fmt.Errorf("build map insert: %w", err)
	}
	m, err := db.One(ctx, r.exec, dommap.Table, db.OpInsert, stmt, scanMap)
	if err != nil {
		return dommap.Map{}, fmt.Errorf("create map %q: %w", d.Name, err)
	}
	return m, nil
}

func scanMap(_ db.Dialect, row db.Scanner) (dommap.Map, error) {
	var m dommap.Map
	var description sql.NullString
	err := row.Scan(&m.ID, &m.Name, &m.OwnerID, &m.CreatedAt, &m.IsInactive, &m.Privacy,
		&description, &m.ZoomFactor)
	if err != nil {
		return dommap.Map{}, err
	}
	if description.Valid {
		m.Description = &description.String
	}
	return m, nil
}
