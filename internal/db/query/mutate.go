package query

import (
	"errors"
	"fmt"
	"strings"
)

// Insert renders INSERT ... VALUES ... RETURNING returning.
func Insert(d Dialect, table string, cols []string, vals []any, returning ...string) (Statement, error) {
	if err := validateAssignments(table, cols, vals); err != nil {
		return Statement{}, err
	}
	args := NewArgs(d)
	marks := make([]string, len(vals))
	for i, v := range vals {
		marks[i] = args.Bind(v)
	}
	sql := "INSERT INTO " + table + " (" + strings.Join(cols, ", ") + ") VALUES (" +
		strings.Join(marks, ", ") + ")"
	ret, err := returningClause(returning)
	if err != nil {
		return Statement{}, err
	}
	return Statement{SQL: sql + ret, Args: args.Values()}, nil
}

// Update renders UPDATE ... SET ... WHERE where RETURNING returning.
// A nil or match-all where is rejected.
func Update(d Dialect, table string, cols []string, vals []any, where Predicate, returning ...string) (Statement, error) {
	if err := validateAssignments(table, cols, vals); err != nil {
		return Statement{}, err
	}
	args := NewArgs(d)
	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = c + " = " + args.Bind(vals[i])
	}
	cond, err := renderRequired(where, args)
	if err != nil {
		return Statement{}, err
	}
	ret, err := returningClause(returning)
	if err != nil {
		return Statement{}, err
	}
	sql := "UPDATE " + table + " SET " + strings.Join(sets, ", ") + " WHERE " + cond + ret
	return Statement{SQL: sql, Args: args.Values()}, nil
}

// Delete renders DELETE FROM ... WHERE where. A nil or match-all where is rejected.
func Delete(d Dialect, table string, where Predicate) (Statement, error) {
	if !IsValidIdentifier(table) {
		return Statement{}, fmt.Errorf("invalid table name %q", table)
	}
	args := NewArgs(d)
	cond, err := renderRequired(where, args)
	if err != nil {
		return Statement{}, err
	}
	return Statement{SQL: "DELETE FROM " + table + " WHERE " + cond, Args: args.Values()}, nil
}

func renderRequired(where Predicate, args *Args) (string, error) {
	if where == nil {
		return "", errors.New("where clause is required")
	}
	cond, err := where.render(args)
	if err != nil {
		return "", err
	}
	if cond == "" {
		return "", errors.New("where clause must not match all rows")
	}
	return cond, nil
}

func validateAssignments(table string, cols []string, vals []any) error {
	if !IsValidIdentifier(table) {
		return fmt.Errorf("invalid table name %q", table)
	}
	if len(cols) == 0 {
		return errors.New("at least one column is required")
	}
	if len(cols) != len(vals) {
		return fmt.Errorf("%d columns but %d values", len(cols), len(vals))
	}
	for _, c := range cols {
		if !IsValidIdentifier(c) {
			return fmt.Errorf("invalid column name %q", c)
		}
	}
	return nil
}

func returningClause(cols []string) (string, error) {
	if len(cols) == 0 {
		return "", nil
	}
	for _, c := range cols {
		if !IsValidIdentifier(c) {
			return "", fmt.Errorf("invalid returning column %q", c)
		}
	}
	return " RETURNING " + strings.Join(cols, ", "), nil
}
