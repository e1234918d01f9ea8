package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/rcsuperstore/partspro/pkg/log"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

//go:embed catalog/*.sql
var embedCatalogMigrations embed.FS

// NewDB opens the runtime database (conversation history) and applies
// migrations.
func NewDB(ctx context.Context, dbPath string) (*sql.DB, error) {
	db, err := open(ctx, dbPath)
	if err != nil {
		return nil, err
	}

	if err := migrate(ctx, db, embedMigrations, "migrations"); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

// NewCatalogDB opens the catalog store and ensures its schema exists. The
// catalog data itself is loaded by external ingestion jobs; at query time the
// structured executor opens its own scoped connections to this path.
func NewCatalogDB(ctx context.Context, dbPath string) (*sql.DB, error) {
	db, err := open(ctx, dbPath)
	if err != nil {
		return nil, err
	}

	if err := migrate(ctx, db, embedCatalogMigrations, "catalog"); err != nil {
		return nil, fmt.Errorf("failed to run catalog migrations: %w", err)
	}
	return db, nil
}

func open(ctx context.Context, dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB, fsys embed.FS, dir string) error {
	goose.SetBaseFS(fsys)
	goose.SetLogger(log.NewGooseLoggerFromCtx(ctx))

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}
	return nil
}
