package sqlite

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"sync"

	"modernc.org/sqlite"

	"github.com/kailas-cloud/plantdex/internal/trigram"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// registerFunctions installs similarity(a, b) and array_to_string(arr, sep)
// for every connection opened afterwards.
func registerFunctions() error {
	registerOnce.Do(func() {
		if err := sqlite.RegisterDeterministicScalarFunction("similarity", 2, similarityFunc); err != nil {
			registerErr = fmt.Errorf("register similarity: %w", err)
			return
		}
		if err := sqlite.RegisterDeterministicScalarFunction("array_to_string", 2, arrayToStringFunc); err != nil {
			registerErr = fmt.Errorf("register array_to_string: %w", err)
		}
	})
	return registerErr
}

// similarityFunc returns NULL when either argument is NULL, like pg_trgm.
func similarityFunc(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	a, okA := text(args[0])
	b, okB := text(args[1])
	if !okA || !okB {
		return nil, nil
	}
	return trigram.Similarity(a, b), nil
}

// arrayToStringFunc joins a JSON text array with a separator.
func arrayToStringFunc(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	raw, ok := text(args[0])
	if !ok {
		return nil, nil
	}
	sep, _ := text(args[1])
	items, err := decodeArray([]byte(raw))
	if err != nil {
		return nil, err
	}
	return strings.Join(items, sep), nil
}

func text(v driver.Value) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	case nil:
		return "", false
	default:
		return fmt.Sprint(s), true
	}
}
