// Package database opens the relational store a service writes to and owns
// the small amount of dialect knowledge the repositories need.
//
// Repositories write portable SQL with $n placeholders numbered in order of
// first appearance, which both lib/pq and go-sqlite3 bind positionally.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/eaglebank/registry/shared/config"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// Schema lists the statements that create a service's tables, per dialect.
// Every statement must be idempotent (CREATE ... IF NOT EXISTS).
type Schema map[config.DatabaseType][]string

// DB is a *sql.DB that remembers which dialect it speaks.
type DB struct {
	*sql.DB
	Type config.DatabaseType
}

// Open connects to the store selected by cfg and verifies the connection.
func Open(cfg *config.Config) (*DB, error) {
	switch cfg.DatabaseType {
	case config.Postgres:
		return OpenPostgres(cfg.DatabaseURL)
	case config.SQLite:
		return OpenSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.DatabaseType)
	}
}

func OpenPostgres(dsn string) (*DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := ping(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres database: %w", err)
	}
	return &DB{DB: db, Type: config.Postgres}, nil
}

func OpenSQLite(path string) (*DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory for SQLite: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=10000")
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// SQLite serialises writers; one connection avoids SQLITE_BUSY entirely.
	db.SetMaxOpenConns(1)

	if err := ping(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}
	return &DB{DB: db, Type: config.SQLite}, nil
}

func ping(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}

// Migrate applies the statements registered for the connection's dialect.
func (db *DB) Migrate(ctx context.Context, schema Schema) error {
	stmts, ok := schema[db.Type]
	if !ok {
		return fmt.Errorf("no schema for database type %s", db.Type)
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	log.Printf("Database schema initialized (%s, %d statements)", db.Type, len(stmts))
	return nil
}

// IsUniqueViolation reports whether err is a unique-constraint failure from
// either supported driver.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// IsForeignKeyViolation reports whether err is a foreign-key failure from
// either supported driver.
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
