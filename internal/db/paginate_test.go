package db

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/plantdex/internal/db/query"
	"github.com/kailas-cloud/plantdex/internal/domain"
	"github.com/kailas-cloud/plantdex/internal/domain/page"
)

func scanID(_ Dialect, row Scanner) (int64, error) {
	var id int64
	err := row.Scan(&id)
	return id, err
}

func TestPaginate_InvalidParamsSkipStore(t *testing.T) {
	acq := &mockAcquirer{}
	e := NewExecutor(acq)

	_, err := Paginate(context.Background(), e, query.From("plants").Columns("id"), page.Parameters{}, scanID)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if acq.calls != 0 {
		t.Errorf("store was called %d times, want 0", acq.calls)
	}
}

func TestPaginate_BuildErrorSkipsStore(t *testing.T) {
	acq := &mockAcquirer{}
	e := NewExecutor(acq)

	_, err := Paginate(context.Background(), e, query.From("plants"), page.DefaultParameters(10), scanID)
	if err == nil {
		t.Fatal("expected build error")
	}
	if acq.calls != 0 {
		t.Errorf("store was called %d times, want 0", acq.calls)
	}
}

func TestPaginate_StoreUnavailable(t *testing.T) {
	acq := &mockAcquirer{connFn: func(context.Context) (Conn, error) {
		return nil, domain.ErrStoreUnavailable
	}}
	obs := &recordingObserver{}
	e := NewExecutor(acq, WithObserver(obs))

	_, err := Paginate(context.Background(), e, query.From("plants").Columns("id"), page.DefaultParameters(10), scanID)
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if len(obs.ops) != 0 {
		t.Errorf("no statement should run, observed %v", obs.ops)
	}
}

func TestQueryError_Unwrap(t *testing.T) {
	driverErr := errors.New("relation does not exist")
	err := error(&QueryError{Op: OpSelect, Query: "SELECT 1", Err: driverErr})

	if !errors.Is(err, domain.ErrQueryExecution) {
		t.Error("QueryError should match ErrQueryExecution")
	}
	if !errors.Is(err, driverErr) {
		t.Error("QueryError should match the driver error")
	}
	var qe *QueryError
	if !errors.As(err, &qe) || qe.Query != "SELECT 1" {
		t.Errorf("errors.As failed: %v", err)
	}
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	err := error(&Error{Op: OpGet, Err: inner})
	if !errors.Is(err, inner) {
		t.Error("Error should unwrap to inner")
	}
	if err.Error() != "GET: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
}
