package plant

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/plantdex/internal/db"
	"github.com/kailas-cloud/plantdex/internal/db/sqlite"
	"github.com/kailas-cloud/plantdex/internal/domain"
	"github.com/kailas-cloud/plantdex/internal/domain/page"
	domplant "github.com/kailas-cloud/plantdex/internal/domain/plant"
	"github.com/kailas-cloud/plantdex/internal/domain/search"
)

func newTestRepo(t *testing.T, threshold float64) *Repo {
	t.Helper()
	return New(db.NewExecutor(sqlite.OpenForTest(t, threshold)))
}

func mustCreate(t *testing.T, r *Repo, p domplant.Plant) domplant.Plant {
	t.Helper()
	created, err := r.Create(context.Background(), p)
	require.NoError(t, err)
	return created
}

func mustQuery(t *testing.T, raw string) search.Query {
	t.Helper()
	q, err := search.NewQuery(raw)
	require.NoError(t, err)
	return q
}

func TestCreate_AndFindByID(t *testing.T) {
	r := newTestRepo(t, 0)
	edible := "Leaves in salads"
	ph := domplant.SoilPHNeutral
	created := mustCreate(t, r, domplant.Plant{
		UniqueName:   "Allium schoenoprasum",
		CommonNameDE: []string{"Schnittlauch"},
		CommonNameEN: []string{"Chives"},
		EdibleUsesEN: &edible,
		SoilPH:       &ph,
	})
	require.NotZero(t, created.ID)

	got, err := r.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, []string{"Schnittlauch"}, got.CommonNameDE)
	require.NotNil(t, got.SoilPH)
	assert.Equal(t, domplant.SoilPHNeutral, *got.SoilPH)
}

func TestCreate_RequiresName(t *testing.T) {
	r := newTestRepo(t, 0)
	_, err := r.Create(context.Background(), domplant.Plant{UniqueName: "  "})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFindByID_NotFound(t *testing.T) {
	r := newTestRepo(t, 0)
	_, err := r.FindByID(context.Background(), 404)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearch_Rose(t *testing.T) {
	r := newTestRepo(t, 0.25)
	for _, name := range []string{"Rosa rugosa", "Lavender", "Rosemary"} {
		mustCreate(t, r, domplant.Plant{UniqueName: name})
	}

	p, err := r.Search(context.Background(), mustQuery(t, "rose"), page.DefaultParameters(10))
	require.NoError(t, err)
	require.Len(t, p.Items, 2)
	assert.Equal(t, "Rosemary", p.Items[0].Item.UniqueName)
	assert.InDelta(t, 0.4, p.Items[0].Rank, 1e-9)
	assert.Equal(t, "Rosa rugosa", p.Items[1].Item.UniqueName)
	assert.Equal(t, 2, p.TotalItems)
	assert.Equal(t, 1, p.TotalPages)
}

func TestSearch_MatchesCommonNames(t *testing.T) {
	r := newTestRepo(t, 0)
	mustCreate(t, r, domplant.Plant{UniqueName: "Malus domestica", CommonNameDE: []string{"Apfel"}})
	mustCreate(t, r, domplant.Plant{UniqueName: "Pyrus communis", CommonNameDE: []string{"Birne"}})

	p, err := r.Search(context.Background(), mustQuery(t, "Apfel"), page.DefaultParameters(10))
	require.NoError(t, err)
	require.Len(t, p.Items, 1)
	assert.Equal(t, "Malus domestica", p.Items[0].Item.UniqueName)
	assert.InDelta(t, 1.0, p.Items[0].Rank, 1e-9)
}

func TestSearch_NoMatchIsEmptyPage(t *testing.T) {
	r := newTestRepo(t, 0)
	mustCreate(t, r, domplant.Plant{UniqueName: "Lavandula angustifolia"})

	p, err := r.Search(context.Background(), mustQuery(t, "xyz"), page.DefaultParameters(10))
	require.NoError(t, err)
	assert.Empty(t, p.Items)
	assert.NotNil(t, p.Items)
	assert.Equal(t, 0, p.TotalPages)
}

func TestSearch_ZeroQuery(t *testing.T) {
	r := newTestRepo(t, 0)
	_, err := r.Search(context.Background(), search.Query{}, page.DefaultParameters(10))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFind_AllOrderedByID(t *testing.T) {
	r := newTestRepo(t, 0)
	for _, name := range []string{"Zea mays", "Allium cepa", "Beta vulgaris"} {
		mustCreate(t, r, domplant.Plant{UniqueName: name})
	}

	params, err := page.NewParameters(1, 5, 100)
	require.NoError(t, err)
	p, err := r.Find(context.Background(), nil, params)
	require.NoError(t, err)
	require.Len(t, p.Items, 3)
	assert.Equal(t, "Zea mays", p.Items[0].UniqueName)
	assert.Equal(t, 1, p.TotalPages)
}

func TestFind_BlankNameMatchesAll(t *testing.T) {
	r := newTestRepo(t, 0)
	mustCreate(t, r, domplant.Plant{UniqueName: "Zea mays"})
	blank := "   "

	p, err := r.Find(context.Background(), &blank, page.DefaultParameters(5))
	require.NoError(t, err)
	assert.Len(t, p.Items, 1)
}

func TestFind_PartialByNameOrderedByName(t *testing.T) {
	r := newTestRepo(t, 0)
	mustCreate(t, r, domplant.Plant{UniqueName: "Solanum tuberosum", CommonNameEN: []string{"Potato"}})
	mustCreate(t, r, domplant.Plant{UniqueName: "Ipomoea batatas", CommonNameEN: []string{"Sweet potato"}})
	mustCreate(t, r, domplant.Plant{UniqueName: "Daucus carota", CommonNameEN: []string{"Carrot"}})

	name := "potato"
	p, err := r.Find(context.Background(), &name, page.DefaultParameters(10))
	require.NoError(t, err)
	require.Len(t, p.Items, 2)
	assert.Equal(t, "Ipomoea batatas", p.Items[0].UniqueName)
	assert.Equal(t, "Solanum tuberosum", p.Items[1].UniqueName)
}

func TestFind_PageBeyondEnd(t *testing.T) {
	r := newTestRepo(t, 0)
	for i := 0; i < 3; i++ {
		mustCreate(t, r, domplant.Plant{UniqueName: fmt.Sprintf("Plant %d", i)})
	}
	params, err := page.NewParameters(9, 2, 100)
	require.NoError(t, err)

	p, err := r.Find(context.Background(), nil, params)
	require.NoError(t, err)
	assert.Empty(t, p.Items)
	assert.Equal(t, 3, p.TotalItems)
	assert.Equal(t, 2, p.TotalPages)
}

func TestFind_HugePageIsEmpty(t *testing.T) {
	r := newTestRepo(t, 0)
	for i := 0; i < 3; i++ {
		mustCreate(t, r, domplant.Plant{UniqueName: fmt.Sprintf("Plant %d", i)})
	}
	// (page-1)*per_page wraps to 0 for the first and below 0 for the second.
	for _, tc := range []struct{ page, perPage int }{{1<<62 + 1, 4}, {1<<62 + 2, 2}} {
		params, err := page.NewParameters(tc.page, tc.perPage, 100)
		require.NoError(t, err)

		p, err := r.Find(context.Background(), nil, params)
		require.NoError(t, err)
		assert.Empty(t, p.Items)
		assert.Equal(t, 3, p.TotalItems)
		assert.Equal(t, tc.page, p.Page)
	}
}
