package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/pressly/goose/v3"
)

// DefaultDir is where the repo keeps its goose SQL migrations.
const DefaultDir = "pkg/migrate/migrations"

func setDialect() error {
	// The schema targets Postgres; sqlite is only used for in-memory tests
	// and those never run migrations.
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return nil
}

// Run dispatches a goose command (up, down, status, ...) against db.
func Run(ctx context.Context, db *sql.DB, dir string, command string, args ...string) error {
	switch {
	case db == nil:
		return fmt.Errorf("db is required")
	case dir == "":
		return fmt.Errorf("dir is required")
	}
	if err := setDialect(); err != nil {
		return err
	}
	if err := goose.RunContext(ctx, command, db, dir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// MigrateToVersion walks the schema up or down until it sits at target.
// The direction is picked by comparing target with the current DB version,
// so the same command covers rollbacks and catch-ups.
func MigrateToVersion(ctx context.Context, db *sql.DB, dir string, target string) error {
	if target == "" {
		return fmt.Errorf("target version is required")
	}
	want, err := strconv.ParseInt(target, 10, 64)
	if err != nil {
		return fmt.Errorf("version %q is not a YYYYMMDDHHMMSS timestamp: %w", target, err)
	}

	if err := setDialect(); err != nil {
		return err
	}
	have, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("read db version: %w", err)
	}

	switch {
	case have == want:
		return nil
	case have < want:
		err = goose.UpToContext(ctx, db, dir, want)
	default:
		err = goose.DownToContext(ctx, db, dir, want)
	}
	if err != nil {
		return fmt.Errorf("migrate %d -> %d: %w", have, want, err)
	}
	return nil
}
