package plantdex

import "github.com/kailas-cloud/plantdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidInput     = domain.ErrInvalidInput
	ErrNotFound         = domain.ErrNotFound
	ErrStoreUnavailable = domain.ErrStoreUnavailable
	ErrQueryExecution   = domain.ErrQueryExecution
)

// InvalidInputError names the rejected field. Retrieve it with errors.As.
type InvalidInputError = domain.InvalidInputError
