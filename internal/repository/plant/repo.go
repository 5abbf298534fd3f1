// Package plant reads and writes plants through the relational store.
package plant

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/kailas-cloud/plantdex/internal/db"
	"github.com/kailas-cloud/plantdex/internal/db/query"
	"github.com/kailas-cloud/plantdex/internal/domain"
	"github.com/kailas-cloud/plantdex/internal/domain/page"
	domplant "github.com/kailas-cloud/plantdex/internal/domain/plant"
	"github.com/kailas-cloud/plantdex/internal/domain/search"
)

var columns = []string{
	domplant.ColID,
	domplant.ColUniqueName,
	domplant.ColCommonNameDE,
	domplant.ColCommonNameEN,
	domplant.ColEdibleUsesEN,
	domplant.ColSoilPH,
}

// searchColumns are scored and fuzzy-matched by Search.
var searchColumns = []query.Column{
	query.Text(domplant.ColUniqueName),
	query.TextArray(domplant.ColCommonNameDE),
	query.TextArray(domplant.ColCommonNameEN),
	query.NullableText(domplant.ColEdibleUsesEN),
}

// findColumns are matched by substring in Find.
var findColumns = []query.Column{
	query.Text(domplant.ColUniqueName),
	query.TextArray(domplant.ColCommonNameEN),
}

// Repo implements usecase/plant.Repository.
type Repo struct {
	exec *db.Executor
}

// New creates a plant repository.
func New(exec *db.Executor) *Repo {
	return &Repo{exec: exec}
}

// Search returns plants trigram-similar to the query, best match first.
// Ties are ordered by id.
func (r *Repo) Search(
	ctx context.Context, q search.Query, params page.Parameters,
) (page.Page[search.Scored[domplant.Plant]], error) {
	if q.IsZero() {
		return page.Page[search.Scored[domplant.Plant]]{}, domain.NewInvalidInput("name_or_term", "is required")
	}
	sel := query.From(domplant.Table).
		Columns(columns...).
		Ranked(query.NewRank(q.Term(), searchColumns...)).
		Where(query.Fuzzy(q.Term(), searchColumns...)).
		OrderBy(query.Desc(query.RankAlias), query.Asc(domplant.ColID))

	p, err := db.Paginate(ctx, r.exec, sel, params, scanScored)
	if err != nil {
		return page.Page[search.Scored[domplant.Plant]]{}, fmt.Errorf("search plants: %w", err)
	}
	return p, nil
}

// Find lists plants. A nil or blank name lists all plants by id; otherwise
// plants whose unique or English common name contains name, by unique name.
func (r *Repo) Find(ctx context.Context, name *string, params page.Parameters) (page.Page[domplant.Plant], error) {
	sel := query.From(domplant.Table).Columns(columns...)
	if name != nil && strings.TrimSpace(*name) != "" {
		sel = sel.
			Where(query.Partial(strings.TrimSpace(*name), findColumns...)).
			OrderBy(query.Asc(domplant.ColUniqueName), query.Asc(domplant.ColID))
	} else {
		sel = sel.Where(query.All()).OrderBy(query.Asc(domplant.ColID))
	}

	p, err := db.Paginate(ctx, r.exec, sel, params, scanPlant)
	if err != nil {
		return page.Page[domplant.Plant]{}, fmt.Errorf("find plants: %w", err)
	}
	return p, nil
}

// FindByID returns one plant or domain.ErrNotFound.
func (r *Repo) FindByID(ctx context.Context, id int64) (domplant.Plant, error) {
	stmt, err := query.From(domplant.Table).
		Columns(columns...).
		Where(query.Eq(domplant.ColID, id)).
		Build(r.exec.Dialect())
	if err != nil {
		return domplant.Plant{}, fmt.Errorf("build plant query: %w", err)
	}
	p, err := db.One(ctx, r.exec, domplant.Table, db.OpSelect, stmt, scanPlant)
	if err != nil {
		return domplant.Plant{}, fmt.Errorf("find plant %d: %w", id, err)
	}
	return p, nil
}

// Create stores a plant and returns it with its assigned id.
func (r *Repo) Create(ctx context.Context, p domplant.Plant) (domplant.Plant, error) {
	if strings.TrimSpace(p.UniqueName) == "" {
		return domplant.Plant{}, domain.NewInvalidInput("unique_name", "is required")
	}
	if p.SoilPH != nil && !p.SoilPH.Valid() {
		return domplant.Plant{}, domain.NewInvalidInput("soil_ph", "unknown value")
	}
	d := r.exec.Dialect()
	stmt, err := query.Insert(d, domplant.Table,
		columns[1:],
		[]any{p.UniqueName, d.ArrayValue(p.CommonNameDE), d.ArrayValue(p.CommonNameEN), p.EdibleUsesEN, p.SoilPH},
		columns...,
	)
	if err != nil {
		return domplant.Plant{}, fmt.Errorf("build plant insert: %w", err)
	}
	created, err := db.One(ctx, r.exec, domplant.Table, db.OpInsert, stmt, scanPlant)
	if err != nil {
		return domplant.Plant{}, fmt.Errorf("create plant %q: %w", p.UniqueName, err)
	}
	return created, nil
}

func scanPlant(d db.Dialect, row db.Scanner) (domplant.Plant, error) {
	var p domplant.Plant
	var edible, soil sql.NullString
	err := row.Scan(&p.ID, &p.UniqueName, d.ScanArray(&p.CommonNameDE), d.ScanArray(&p.CommonNameEN), &edible, &soil)
	if err != nil {
		return domplant.Plant{}, err
	}
	return finish(p, edible, soil)
}

func scanScored(d db.Dialect, row db.Scanner) (search.Scored[domplant.Plant], error) {
	var p domplant.Plant
	var edible, soil sql.NullString
	var rank float64
	err := row.Scan(&p.ID, &p.UniqueName, d.ScanArray(&p.CommonNameDE), d.ScanArray(&p.CommonNameEN),
		&edible, &soil, &rank)
	if err != nil {
		return search.Scored[domplant.Plant]{}, err
	}
	p, err = finish(p, edible, soil)
	if err != nil {
		return search.Scored[domplant.Plant]{}, err
	}
	return search.Scored[domplant.Plant]{Item: p, Rank: rank}, nil
}

func finish(p domplant.Plant, edible, soil sql.NullString) (domplant.Plant, error) {
	if edible.Valid {
		p.EdibleUsesEN = &edible.String
	}
	if soil.Valid {
		ph, err := domplant.ParseSoilPH(soil.String)
		if err != nil {
			return domplant.Plant{}, err
		}
		p.SoilPH = &ph
	}
	if p.CommonNameDE == nil {
		p.CommonNameDE = []string{}
	}
	if p.CommonNameEN == nil {
		p.CommonNameEN = []string{}
	}
	return p, nil
}
