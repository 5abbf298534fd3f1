package query

import "fmt"

// Kind tells the renderer how a column participates in text matching.
type Kind int

const (
	// Scalar is a non-null text column.
	Scalar Kind = iota
	// Optional is a nullable text column; a NULL scores 0.
	Optional
	// Array is a text array column, matched as its elements joined by a blank.
	Array
)

// Column is a text column used by Rank, Fuzzy and Partial.
type Column struct {
	Name string
	Kind Kind
}

// Text declares a non-null text column.
func Text(name string) Column { return Column{Name: name, Kind: Scalar} }

// NullableText declares a nullable text column.
func NullableText(name string) Column { return Column{Name: name, Kind: Optional} }

// TextArray declares a text array column.
func TextArray(name string) Column { return Column{Name: name, Kind: Array} }

// expr returns the text expression compared against the term.
func (c Column) expr() string {
	if c.Kind == Array {
		return "array_to_string(" + c.Name + ", ' ')"
	}
	return c.Name
}

func validateColumns(cols []Column) error {
	if len(cols) == 0 {
		return fmt.Errorf("at least one column is required")
	}
	for _, c := range cols {
		if !IsValidIdentifier(c.Name) {
			return fmt.Errorf("invalid column name %q", c.Name)
		}
	}
	return nil
}

// IsValidIdentifier returns true if s matches [a-zA-Z_][a-zA-Z0-9_]*.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
		isDigit := r >= '0' && r <= '9'
		if !isAlpha && (!isDigit || i == 0) {
			return false
		}
	}
	return true
}
