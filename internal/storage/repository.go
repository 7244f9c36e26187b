// Package storage provides the SQLite-backed collection store.
//
// The schema is a single key-value table: each collection ("families",
// "bills") is stored as one JSON-encoded array under its name, and reads
// and writes always move the whole value. That keeps the persisted shape
// identical to the wire shape and preserves the read-modify-replace
// contract of store.Store on top of a durable file.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"warikan/internal/core"

	_ "modernc.org/sqlite"
)

const (
	keyFamilies = "families"
	keyBills    = "bills"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Families implements store.FamilyStore.
func (r *SQLiteRepository) Families(ctx context.Context) ([]core.Family, error) {
	var families []core.Family
	if err := r.getCollection(ctx, keyFamilies, &families); err != nil {
		return nil, err
	}
	return families, nil
}

// SaveFamilies implements store.FamilyStore.
func (r *SQLiteRepository) SaveFamilies(ctx context.Context, families []core.Family) error {
	if families == nil {
		families = []core.Family{}
	}
	return r.setCollection(ctx, keyFamilies, families, len(families))
}

// Bills implements store.BillStore.
func (r *SQLiteRepository) Bills(ctx context.Context) ([]core.Bill, error) {
	var bills []core.Bill
	if err := r.getCollection(ctx, keyBills, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

// SaveBills implements store.BillStore.
func (r *SQLiteRepository) SaveBills(ctx context.Context, bills []core.Bill) error {
	if bills == nil {
		bills = []core.Bill{}
	}
	return r.setCollection(ctx, keyBills, bills, len(bills))
}

func (r *SQLiteRepository) getCollection(ctx context.Context, name string, v any) error {
	var value string
	err := r.db.QueryRowContext(ctx,
		"SELECT value FROM collections WHERE name = ?", name,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		// A collection that was never written is empty, not an error.
		return nil
	}
	if err != nil {
		return fmt.Errorf("read collection %s: %w", name, err)
	}
	if err := json.Unmarshal([]byte(value), v); err != nil {
		return fmt.Errorf("decode collection %s: %w", name, err)
	}
	return nil
}

func (r *SQLiteRepository) setCollection(ctx context.Context, name string, v any, count int) error {
	value, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", name, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO collections (name, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		name, string(value), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("write collection %s: %w", name, err)
	}

	slog.InfoContext(ctx, "Collection replaced",
		"component", "storage",
		"collection", name,
		"entries", count)
	return nil
}
