package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Order is one ORDER BY term.
type Order struct {
	Column string
	Desc   bool
}

// Asc orders by col ascending.
func Asc(col string) Order { return Order{Column: col} }

// Desc orders by col descending.
func Desc(col string) Order { return Order{Column: col, Desc: true} }

// Statement is rendered SQL with its arguments.
type Statement struct {
	SQL  string
	Args []any
}

// String returns the SQL text.
func (s Statement) String() string { return s.SQL }

// Select describes a read over one table. Methods return modified copies.
type Select struct {
	table   string
	columns []string
	where   Predicate
	rank    *Rank
	order   []Order
}

// From starts a select over table.
func From(table string) Select {
	return Select{table: table}
}

// Columns sets the selected columns.
func (s Select) Columns(cols ...string) Select {
	s.columns = append([]string(nil), cols...)
	return s
}

// Where sets the filter predicate. Nil matches all rows.
func (s Select) Where(p Predicate) Select {
	s.where = p
	return s
}

// Ranked adds the rank expression as the last selected column, aliased RankAlias.
func (s Select) Ranked(r Rank) Select {
	s.rank = &r
	return s
}

// OrderBy sets the ordering. RankAlias is accepted once Ranked is set.
func (s Select) OrderBy(o ...Order) Select {
	s.order = append([]Order(nil), o...)
	return s
}

// Table returns the table name.
func (s Select) Table() string { return s.table }

// IsRanked reports whether the select carries a rank column.
func (s Select) IsRanked() bool { return s.rank != nil }

// Build renders the data query without LIMIT.
func (s Select) Build(d Dialect) (Statement, error) {
	return s.build(d, -1, 0)
}

// BuildPage renders the data query with LIMIT and OFFSET.
func (s Select) BuildPage(d Dialect, limit, offset int) (Statement, error) {
	if limit < 1 {
		return Statement{}, errors.New("limit must be positive")
	}
	if offset < 0 {
		return Statement{}, errors.New("offset must not be negative")
	}
	return s.build(d, limit, offset)
}

// BuildCount renders SELECT COUNT(*) with the same filter.
// Rank, ordering and limits are left out.
func (s Select) BuildCount(d Dialect) (Statement, error) {
	if !IsValidIdentifier(s.table) {
		return Statement{}, fmt.Errorf("invalid table name %q", s.table)
	}
	args := NewArgs(d)
	var b strings.Builder
	b.WriteString("SELECT COUNT(*) FROM ")
	b.WriteString(s.table)
	if err := s.writeWhere(&b, args); err != nil {
		return Statement{}, err
	}
	return Statement{SQL: b.String(), Args: args.Values()}, nil
}

func (s Select) build(d Dialect, limit, offset int) (Statement, error) {
	if err := s.validate(); err != nil {
		return Statement{}, err
	}
	args := NewArgs(d)
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(s.columns, ", "))
	if s.rank != nil {
		expr, err := s.rank.render(args)
		if err != nil {
			return Statement{}, err
		}
		b.WriteString(", ")
		b.WriteString(expr)
		b.WriteString(" AS ")
		b.WriteString(RankAlias)
	}
	b.WriteString(" FROM ")
	b.WriteString(s.table)
	if err := s.writeWhere(&b, args); err != nil {
		return Statement{}, err
	}
	if len(s.order) > 0 {
		b.WriteString(" ORDER BY ")
		for i, o := range s.order {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(o.Column)
			if o.Desc {
				b.WriteString(" DESC")
			} else {
				b.WriteString(" ASC")
			}
		}
	}
	if limit > 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(args.Bind(limit))
		b.WriteString(" OFFSET ")
		b.WriteString(args.Bind(offset))
	}
	return Statement{SQL: b.String(), Args: args.Values()}, nil
}

func (s Select) writeWhere(b *strings.Builder, args *Args) error {
	if s.where == nil {
		return nil
	}
	cond, err := s.where.render(args)
	if err != nil {
		return err
	}
	if cond != "" {
		b.WriteString(" WHERE ")
		b.WriteString(cond)
	}
	return nil
}

func (s Select) validate() error {
	if !IsValidIdentifier(s.table) {
		return fmt.Errorf("invalid table name %q", s.table)
	}
	if len(s.columns) == 0 {
		return errors.New("at least one column is required")
	}
	seen := make(map[string]bool, len(s.columns))
	for i, c := range s.columns {
		if !IsValidIdentifier(c) {
			return errors.New("invalid column name at index " + strconv.Itoa(i))
		}
		if seen[c] {
			return errors.New("duplicate column: " + c)
		}
		seen[c] = true
	}
	for _, o := range s.order {
		if o.Column == RankAlias && s.rank != nil {
			continue
		}
		if !IsValidIdentifier(o.Column) || o.Column == RankAlias {
			return fmt.Errorf("invalid order column %q", o.Column)
		}
	}
	return nil
}
