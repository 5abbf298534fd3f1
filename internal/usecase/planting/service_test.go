package planting

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/plantdex/internal/domain"
	domplanting "github.com/kailas-cloud/plantdex/internal/domain/planting"
)

// --- Mocks ---

type mockRepo struct {
	items   []domplanting.Planting
	created domplanting.Draft
	patched domplanting.Patch
	err     error
	calls   int
}

func (m *mockRepo) Find(_ context.Context, _ domplanting.SearchParameters) ([]domplanting.Planting, error) {
	m.calls++
	return m.items, m.err
}

func (m *mockRepo) Create(_ context.Context, d domplanting.Draft) (domplanting.Planting, error) {
	m.calls++
	m.created = d
	if m.err != nil {
		return domplanting.Planting{}, m.err
	}
	return domplanting.Planting{ID: 1, LayerID: d.LayerID, PlantID: d.PlantID, Width: d.Width}, nil
}

func (m *mockRepo) Update(_ context.Context, id int64, p domplanting.Patch) (domplanting.Planting, error) {
	m.calls++
	m.patched = p
	if m.err != nil {
		return domplanting.Planting{}, m.err
	}
	return domplanting.Planting{ID: id}, nil
}

func (m *mockRepo) Delete(_ context.Context, _ int64) error {
	m.calls++
	return m.err
}

func validDraft() domplanting.Draft {
	return domplanting.Draft{LayerID: 1, PlantID: 2, Width: 10, Height: 10, ScaleX: 1, ScaleY: 1}
}

func ptr(v float64) *float64 { return &v }

// --- Tests ---

func TestFind_NilBecomesEmpty(t *testing.T) {
	svc := New(&mockRepo{})

	res, err := svc.Find(context.Background(), domplanting.SearchParameters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res == nil || len(res) != 0 {
		t.Fatalf("expected empty slice, got %v", res)
	}
}

func TestCreate(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	p, err := svc.Create(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != 1 || repo.created.PlantID != 2 {
		t.Errorf("unexpected planting: %+v", p)
	}
}

func TestCreate_InvalidDraft(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)
	d := validDraft()
	d.Width = 0

	_, err := svc.Create(context.Background(), d)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if repo.calls != 0 {
		t.Fatal("store must not be touched")
	}
}

func TestUpdate(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	p, err := svc.Update(context.Background(), 4, domplanting.Patch{X: ptr(12)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != 4 || repo.patched.X == nil || *repo.patched.X != 12 {
		t.Errorf("unexpected update: %+v / %+v", p, repo.patched)
	}
}

func TestUpdate_EmptyPatch(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	_, err := svc.Update(context.Background(), 4, domplanting.Patch{})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if repo.calls != 0 {
		t.Fatal("store must not be touched")
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := New(&mockRepo{err: domain.ErrNotFound})

	_, err := svc.Update(context.Background(), 4, domplanting.Patch{Y: ptr(1)})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	svc := New(&mockRepo{})
	if err := svc.Delete(context.Background(), 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	svc := New(&mockRepo{err: domain.ErrNotFound})
	if err := svc.Delete(context.Background(), 4); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete_NonPositiveID(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)
	if err := svc.Delete(context.Background(), -1); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if repo.calls != 0 {
		t.Fatal("store must not be touched")
	}
}
