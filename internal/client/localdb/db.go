// Package localdb opens the client's SQLite file and brings its schema up to
// date.
package localdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/cooksocial/internal/client/migrations"
	"github.com/dmitrijs2005/cooksocial/internal/filex"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// DriverName is the database/sql name of the pure-Go SQLite driver.
const DriverName = "sqlite"

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations. Safe to call on an already
// migrated database.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect error: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return nil
}

// Open opens dsn and runs migrations. A plain file path gets its directory
// created first. The caller owns the returned handle.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if isFilePath(dsn) {
		if _, err := filex.EnsureParentDir(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s error: %w", dsn, err)
	}
	// one writer; SQLite serialises anyway and this keeps :memory: DSNs on a
	// single connection
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func isFilePath(dsn string) bool {
	return dsn != ":memory:" && !strings.HasPrefix(dsn, "file:")
}
