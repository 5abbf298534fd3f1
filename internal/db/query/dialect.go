// Package query renders parameterized SQL for ranked, filtered and paginated reads.
//
// Statements are described as immutable values (Select, Predicate, Rank) and
// rendered once per execution against a Dialect, which supplies placeholder
// syntax and the store-specific trigram operators.
package query

// Dialect is the SQL flavor a statement is rendered for.
type Dialect interface {
	// Name identifies the dialect in logs and metrics.
	Name() string
	// Placeholder returns the marker for the n-th (1-based) bound argument.
	Placeholder(n int) string
	// Greatest combines expressions into their maximum.
	Greatest(exprs []string) string
	// Fuzzy renders a boolean trigram match of expr against the bound term.
	Fuzzy(expr, placeholder string) string
	// ILike returns the case-insensitive LIKE keyword.
	ILike() string
}

// Args collects bound arguments while a statement renders.
type Args struct {
	dialect Dialect
	values  []any
}

// NewArgs starts an empty argument list for d.
func NewArgs(d Dialect) *Args {
	return &Args{dialect: d}
}

// Bind appends v and returns its placeholder. Every call binds a fresh argument.
func (a *Args) Bind(v any) string {
	a.values = append(a.values, v)
	return a.dialect.Placeholder(len(a.values))
}

// Values returns the bound arguments in placeholder order.
func (a *Args) Values() []any { return a.values }
