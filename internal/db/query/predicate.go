package query

import (
	"fmt"
	"strings"
)

// Predicate is an immutable WHERE clause fragment.
// Rendering binds fresh arguments and never mutates the predicate.
type Predicate interface {
	// render returns the SQL fragment, or "" when the predicate matches everything.
	render(a *Args) (string, error)
}

// All matches every row.
func All() Predicate { return all{} }

type all struct{}

func (all) render(*Args) (string, error) { return "", nil }

// Fuzzy matches rows where the term is trigram-similar to any of the columns.
func Fuzzy(term string, cols ...Column) Predicate {
	return fuzzy{term: term, cols: append([]Column(nil), cols...)}
}

type fuzzy struct {
	term string
	cols []Column
}

func (f fuzzy) render(a *Args) (string, error) {
	if err := validateColumns(f.cols); err != nil {
		return "", fmt.Errorf("fuzzy: %w", err)
	}
	parts := make([]string, len(f.cols))
	for i, c := range f.cols {
		parts[i] = a.dialect.Fuzzy(c.expr(), a.Bind(f.term))
	}
	return join(parts, "OR"), nil
}

// Partial matches rows where any column contains the term, ignoring case.
// LIKE wildcards in the term match literally.
func Partial(term string, cols ...Column) Predicate {
	return partial{term: term, cols: append([]Column(nil), cols...)}
}

type partial struct {
	term string
	cols []Column
}

func (p partial) render(a *Args) (string, error) {
	if err := validateColumns(p.cols); err != nil {
		return "", fmt.Errorf("partial: %w", err)
	}
	pattern := "%" + EscapeLike(p.term) + "%"
	parts := make([]string, len(p.cols))
	for i, c := range p.cols {
		parts[i] = c.expr() + " " + a.dialect.ILike() + " " + a.Bind(pattern) + ` ESCAPE '\'`
	}
	return join(parts, "OR"), nil
}

// EscapeLike escapes the LIKE metacharacters %, _ and \ with a backslash.
func EscapeLike(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Eq matches rows where col equals value.
func Eq(col string, value any) Predicate {
	return eq{col: col, value: value}
}

type eq struct {
	col   string
	value any
}

func (e eq) render(a *Args) (string, error) {
	if !IsValidIdentifier(e.col) {
		return "", fmt.Errorf("eq: invalid column name %q", e.col)
	}
	return e.col + " = " + a.Bind(e.value), nil
}

// And matches rows satisfying every predicate.
// Nil operands are skipped; without operands it matches everything.
func And(ps ...Predicate) Predicate {
	return junction{op: "AND", ps: append([]Predicate(nil), ps...)}
}

// Or matches rows satisfying any predicate. Nil operands are skipped;
// a match-all operand, or no operand at all, matches everything.
func Or(ps ...Predicate) Predicate {
	return junction{op: "OR", ps: append([]Predicate(nil), ps...)}
}

type junction struct {
	op string
	ps []Predicate
}

func (j junction) render(a *Args) (string, error) {
	mark := len(a.values)
	parts := make([]string, 0, len(j.ps))
	for _, p := range j.ps {
		if p == nil {
			continue
		}
		s, err := p.render(a)
		if err != nil {
			return "", err
		}
		if s == "" {
			if j.op == "OR" {
				a.values = a.values[:mark]
				return "", nil
			}
			continue
		}
		parts = append(parts, s)
	}
	return join(parts, j.op), nil
}

func join(parts []string, op string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return "(" + strings.Join(parts, ") "+op+" (") + ")"
	}
}
