package sqlite

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/plantdex/internal/db"
)

// Compile-time check: Dialect implements db.Dialect.
var _ db.Dialect = Dialect{}

// Dialect renders SQL for SQLite with the Go-registered trigram functions.
type Dialect struct {
	// Threshold is the minimum similarity of a fuzzy match.
	Threshold float64
}

// Name returns "sqlite".
func (Dialect) Name() string { return "sqlite" }

// Placeholder returns ?.
func (Dialect) Placeholder(int) string { return "?" }

// Greatest uses the multi-argument MAX scalar function.
// Unlike GREATEST it yields NULL if any argument is NULL.
func (Dialect) Greatest(exprs []string) string {
	return "MAX(" + strings.Join(exprs, ", ") + ")"
}

// Fuzzy compares similarity against the configured threshold.
func (d Dialect) Fuzzy(expr, placeholder string) string {
	return "similarity(" + expr + ", " + placeholder + ") >= " +
		strconv.FormatFloat(d.Threshold, 'f', -1, 64)
}

// ILike returns LIKE, which folds ASCII case only.
func (Dialect) ILike() string { return "LIKE" }

// ScanArray decodes a JSON text array.
func (Dialect) ScanArray(dest *[]string) any { return &jsonArray{dest: dest} }

// ArrayValue encodes a JSON text array.
func (Dialect) ArrayValue(v []string) any { return jsonArrayValue(v) }

// SnapshotTxOptions returns a plain deferred transaction; SQLite reads
// inside one transaction always see one snapshot.
func (Dialect) SnapshotTxOptions() *sql.TxOptions { return &sql.TxOptions{} }

type jsonArray struct {
	dest *[]string
}

func (a *jsonArray) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*a.dest = []string{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("scan text array: unsupported type %T", src)
	}
	out, err := decodeArray(raw)
	if err != nil {
		return err
	}
	*a.dest = out
	return nil
}

type jsonArrayValue []string

func (v jsonArrayValue) Value() (driver.Value, error) {
	if v == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(v))
	if err != nil {
		return nil, fmt.Errorf("encode text array: %w", err)
	}
	return string(b), nil
}

func decodeArray(raw []byte) ([]string, error) {
	out := []string{}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode text array: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}
