package db

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
)

// Migrate applies every NNN_name.up.sql file of fsys whose version is above the
// recorded one, in version order, and returns how many it applied.
func Migrate(ctx context.Context, sqlDB *sql.DB, fsys fs.FS) (int, error) {
	_, err := sqlDB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return 0, &Error{Op: OpMigrate, Err: fmt.Errorf("creating schema_migrations table: %w", err)}
	}

	var current int
	row := sqlDB.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&current); err != nil {
		return 0, &Error{Op: OpMigrate, Err: fmt.Errorf("getting current version: %w", err)}
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return 0, &Error{Op: OpMigrate, Err: fmt.Errorf("reading migrations directory: %w", err)}
	}

	type migration struct {
		version int
		name    string
	}
	var pending []migration
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version > current {
			pending = append(pending, migration{version: version, name: name})
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].version < pending[j].version })

	for _, m := range pending {
		content, err := fs.ReadFile(fsys, m.name)
		if err != nil {
			return 0, &Error{Op: OpMigrate, Err: fmt.Errorf("reading migration %s: %w", m.name, err)}
		}
		if _, err := sqlDB.ExecContext(ctx, string(content)); err != nil {
			return 0, &Error{Op: OpMigrate, Err: fmt.Errorf("executing migration %s: %w", m.name, err)}
		}
		record := "INSERT INTO schema_migrations (version) VALUES (" + strconv.Itoa(m.version) + ")"
		if _, err := sqlDB.ExecContext(ctx, record); err != nil {
			return 0, &Error{Op: OpMigrate, Err: fmt.Errorf("recording migration %s: %w", m.name, err)}
		}
	}
	return len(pending), nil
}
