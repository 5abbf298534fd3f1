package chi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	dommap "github.com/kailas-cloud/plantdex/internal/domain/gardenmap"
	"github.com/kailas-cloud/plantdex/internal/domain/page"
	domplant "github.com/kailas-cloud/plantdex/internal/domain/plant"
	domplanting "github.com/kailas-cloud/plantdex/internal/domain/planting"
	"github.com/kailas-cloud/plantdex/internal/domain/search"
	mapuc "github.com/kailas-cloud/plantdex/internal/usecase/gardenmap"
	healthuc "github.com/kailas-cloud/plantdex/internal/usecase/health"
	plantuc "github.com/kailas-cloud/plantdex/internal/usecase/plant"
	plantinguc "github.com/kailas-cloud/plantdex/internal/usecase/planting"
)

// --- Mocks ---

type mockPlantRepo struct {
	scored []search.Scored[domplant.Plant]
	plants []domplant.Plant
	total  int
	err    error

	lastTerm   string
	lastName   *string
	lastParams page.Parameters
}

func (m *mockPlantRepo) Search(
	_ context.Context, q search.Query, params page.Parameters,
) (page.Page[search.Scored[domplant.Plant]], error) {
	m.lastTerm, m.lastParams = q.Term(), params
	if m.err != nil {
		return page.Page[search.Scored[domplant.Plant]]{}, m.err
	}
	return page.New(m.scored, params, m.total), nil
}

func (m *mockPlantRepo) Find(_ context.Context, name *string, params page.Parameters) (page.Page[domplant.Plant], error) {
	m.lastName, m.lastParams = name, params
	if m.err != nil {
		return page.Page[domplant.Plant]{}, m.err
	}
	return page.New(m.plants, params, m.total), nil
}

func (m *mockPlantRepo) FindByID(_ context.Context, id int64) (domplant.Plant, error) {
	if m.err != nil {
		return domplant.Plant{}, m.err
	}
	return domplant.Plant{ID: id, UniqueName: "Rosa rugosa"}, nil
}

type mockPlantingRepo struct {
	err        error
	lastParams domplanting.SearchParameters
	lastDraft  domplanting.Draft
}

func (m *mockPlantingRepo) Find(_ context.Context, p domplanting.SearchParameters) ([]domplanting.Planting, error) {
	m.lastParams = p
	return nil, m.err
}

func (m *mockPlantingRepo) Create(_ context.Context, d domplanting.Draft) (domplanting.Planting, error) {
	m.lastDraft = d
	if m.err != nil {
		return domplanting.Planting{}, m.err
	}
	return domplanting.Planting{ID: 11, LayerID: d.LayerID, PlantID: d.PlantID, Width: d.Width, Height: d.Height,
		ScaleX: d.ScaleX, ScaleY: d.ScaleY}, nil
}

func (m *mockPlantingRepo) Update(_ context.Context, id int64, p domplanting.Patch) (domplanting.Planting, error) {
	if m.err != nil {
		return domplanting.Planting{}, m.err
	}
	out := domplanting.Planting{ID: id}
	if p.X != nil {
		out.X = *p.X
	}
	return out, nil
}

func (m *mockPlantingRepo) Delete(_ context.Context, _ int64) error { return m.err }

type mockMapRepo struct {
	err        error
	lastParams dommap.SearchParameters
}

func (m *mockMapRepo) Find(
	_ context.Context, params dommap.SearchParameters, pp page.Parameters,
) (page.Page[dommap.Map], error) {
	m.lastParams = params
	if m.err != nil {
		return page.Page[dommap.Map]{}, m.err
	}
	return page.New([]dommap.Map{{ID: 1, Name: "Backyard"}}, pp, 1), nil
}

func (m *mockMapRepo) FindByID(_ context.Context, id int64) (dommap.Map, error) {
	if m.err != nil {
		return dommap.Map{}, m.err
	}
	return dommap.Map{ID: id, Name: "Backyard"}, nil
}

func (m *mockMapRepo) Create(_ context.Context, d dommap.Draft) (dommap.Map, error) {
	if m.err != nil {
		return dommap.Map{}, m.err
	}
	return dommap.Map{ID: 5, Name: d.Name, OwnerID: d.OwnerID, Privacy: d.Privacy, ZoomFactor: d.ZoomFactor}, nil
}

type mockPinger struct{ err error }

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// --- Helpers ---

type testEnv struct {
	plants    *mockPlantRepo
	plantings *mockPlantingRepo
	maps      *mockMapRepo
	db        *mockPinger
	router    http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		plants:    &mockPlantRepo{},
		plantings: &mockPlantingRepo{},
		maps:      &mockMapRepo{},
		db:        &mockPinger{},
	}
	srv := NewServer(
		plantuc.New(env.plants),
		plantinguc.New(env.plantings),
		mapuc.New(env.maps),
		healthuc.New(env.db, nil),
		PaginationConfig{DefaultPerPage: 20, MaxPerPage: 100},
		nil,
	)
	r := chi.NewRouter()
	srv.Routes(r)
	env.router = r
	return env
}

func (e *testEnv) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}
