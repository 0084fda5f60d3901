// SQLite implementation of the Store interface.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mashriq/daleel/internal/models"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS fatwas (
		id TEXT PRIMARY KEY,
		category TEXT,
		question TEXT NOT NULL,
		answer TEXT NOT NULL,
		link TEXT,
		shaykh TEXT,
		series TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_fatwas_category ON fatwas(category);
	CREATE INDEX IF NOT EXISTS idx_fatwas_shaykh ON fatwas(shaykh);
	`
	_, err := db.Exec(schema)
	return err
}

// PutFatwa inserts or replaces a fatwa record.
func (s *SQLiteStore) PutFatwa(ctx context.Context, fatwa *models.Fatwa) error {
	now := time.Now()
	if fatwa.CreatedAt.IsZero() {
		fatwa.CreatedAt = now
	}
	fatwa.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO fatwas (id, category, question, answer, link, shaykh, series, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		fatwa.ID, fatwa.Category, fatwa.Question, fatwa.Answer, fatwa.Link,
		fatwa.Shaykh, fatwa.Series, fatwa.CreatedAt, fatwa.UpdatedAt,
	)
	return err
}

// GetFatwa returns a fatwa by ID, or ErrNotFound.
func (s *SQLiteStore) GetFatwa(ctx context.Context, id string) (*models.Fatwa, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, category, question, answer, link, shaykh, series, created_at, updated_at
		 FROM fatwas WHERE id = ?`, id,
	)
	fatwa, err := scanFatwa(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("fatwa %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return fatwa, nil
}

// GetFatwasByIDs returns records for the given IDs in input-ID order.
// IDs with no record are silently skipped.
func (s *SQLiteStore) GetFatwasByIDs(ctx context.Context, ids []string) ([]*models.Fatwa, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := strings.Repeat("?,", len(ids)-1) + "?"
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, question, answer, link, shaykh, series, created_at, updated_at
		 FROM fatwas WHERE id IN (`+placeholders+`)`, args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]*models.Fatwa, len(ids))
	for rows.Next() {
		fatwa, err := scanFatwa(rows)
		if err != nil {
			return nil, err
		}
		byID[fatwa.ID] = fatwa
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]*models.Fatwa, 0, len(ids))
	for _, id := range ids {
		if fatwa, ok := byID[id]; ok {
			out = append(out, fatwa)
		}
	}
	return out, nil
}

// ListFatwas returns a page of records ordered by ID.
func (s *SQLiteStore) ListFatwas(ctx context.Context, offset, limit int) ([]*models.Fatwa, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, question, answer, link, shaykh, series, created_at, updated_at
		 FROM fatwas ORDER BY id LIMIT ? OFFSET ?`, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Fatwa
	for rows.Next() {
		fatwa, err := scanFatwa(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, fatwa)
	}
	return out, rows.Err()
}

// CountFatwas returns the number of stored records.
func (s *SQLiteStore) CountFatwas(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM fatwas`).Scan(&count)
	return count, err
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanFatwa(row scanner) (*models.Fatwa, error) {
	var f models.Fatwa
	err := row.Scan(&f.ID, &f.Category, &f.Question, &f.Answer, &f.Link,
		&f.Shaykh, &f.Series, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
