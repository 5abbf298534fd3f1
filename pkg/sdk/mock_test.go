package plantdex

import (
	"context"

	dommap "github.com/kailas-cloud/plantdex/internal/domain/gardenmap"
	"github.com/kailas-cloud/plantdex/internal/domain/page"
	domplant "github.com/kailas-cloud/plantdex/internal/domain/plant"
	domplanting "github.com/kailas-cloud/plantdex/internal/domain/planting"
	"github.com/kailas-cloud/plantdex/internal/domain/search"
	healthuc "github.com/kailas-cloud/plantdex/internal/usecase/health"
)

// --- plantUseCase mock ---

type mockPlantUC struct {
	searchFn   func(ctx context.Context, raw string, params page.Parameters) (page.Page[search.Scored[domplant.Plant]], error)
	findFn     func(ctx context.Context, name *string, params page.Parameters) (page.Page[domplant.Plant], error)
	findByIDFn func(ctx context.Context, id int64) (domplant.Plant, error)
}

func (m *mockPlantUC) Search(
	ctx context.Context, raw string, params page.Parameters,
) (page.Page[search.Scored[domplant.Plant]], error) {
	return m.searchFn(ctx, raw, params)
}

func (m *mockPlantUC) Find(ctx context.Context, name *string, params page.Parameters) (page.Page[domplant.Plant], error) {
	return m.findFn(ctx, name, params)
}

func (m *mockPlantUC) FindByID(ctx context.Context, id int64) (domplant.Plant, error) {
	return m.findByIDFn(ctx, id)
}

// --- plantingUseCase mock ---

type mockPlantingUC struct {
	findFn   func(ctx context.Context, params domplanting.SearchParameters) ([]domplanting.Planting, error)
	createFn func(ctx context.Context, d domplanting.Draft) (domplanting.Planting, error)
	updateFn func(ctx context.Context, id int64, p domplanting.Patch) (domplanting.Planting, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockPlantingUC) Find(ctx context.Context, params domplanting.SearchParameters) ([]domplanting.Planting, error) {
	return m.findFn(ctx, params)
}

func (m *mockPlantingUC) Create(ctx context.Context, d domplanting.Draft) (domplanting.Planting, error) {
	return m.createFn(ctx, d)
}

func (m *mockPlantingUC) Update(ctx context.Context, id int64, p domplanting.Patch) (domplanting.Planting, error) {
	return m.updateFn(ctx, id, p)
}

func (m *mockPlantingUC) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

// --- mapUseCase mock ---

type mockMapUC struct {
	findFn     func(ctx context.Context, params dommap.SearchParameters, pp page.Parameters) (page.Page[dommap.Map], error)
	findByIDFn func(ctx context.Context, id int64) (dommap.Map, error)
	createFn   func(ctx context.Context, d dommap.Draft) (dommap.Map, error)
}

func (m *mockMapUC) Find(
	ctx context.Context, params dommap.SearchParameters, pp page.Parameters,
) (page.Page[dommap.Map], error) {
	return m.findFn(ctx, params, pp)
}

func (m *mockMapUC) FindByID(ctx context.Context, id int64) (dommap.Map, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockMapUC) Create(ctx context.Context, d dommap.Draft) (dommap.Map, error) {
	return m.createFn(ctx, d)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

// --- store mock ---

type mockStore struct {
	pingErr error
	closed  bool
}

func (m *mockStore) Ping(context.Context) error { return m.pingErr }

func (m *mockStore) Close() error {
	m.closed = true
	return nil
}

// testClient builds a client over mocks with default pagination.
func testClient(plants plantUseCase, plantings plantingUseCase, maps mapUseCase) *Client {
	return &Client{
		plantSvc:    plants,
		plantingSvc: plantings,
		mapSvc:      maps,
		pagination:  pagination{defaultPerPage: page.DefaultPerPage, maxPerPage: page.DefaultMaxLimit},
	}
}
