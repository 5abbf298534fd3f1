package query

import "fmt"

// RankAlias is the result column holding the relevance score.
const RankAlias = "rank"

// Rank scores a row by the best trigram similarity of the term across columns.
type Rank struct {
	term string
	cols []Column
}

// NewRank describes a rank over cols. Columns are validated when rendered.
func NewRank(term string, cols ...Column) Rank {
	return Rank{term: term, cols: append([]Column(nil), cols...)}
}

// render returns the score expression without alias.
func (r Rank) render(a *Args) (string, error) {
	if err := validateColumns(r.cols); err != nil {
		return "", fmt.Errorf("rank: %w", err)
	}
	exprs := make([]string, len(r.cols))
	for i, c := range r.cols {
		e := "similarity(" + c.expr() + ", " + a.Bind(r.term) + ")"
		if c.Kind == Optional {
			e = "COALESCE(" + e + ", 0)"
		}
		exprs[i] = e
	}
	if len(exprs) == 1 {
		return exprs[0], nil
	}
	return a.dialect.Greatest(exprs), nil
}
