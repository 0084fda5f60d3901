// Package store defines the persistence interface for fatwa records.
package store

import (
	"context"
	"errors"

	"github.com/mashriq/daleel/internal/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines fatwa record persistence operations. The pipeline only reads;
// writes happen during corpus import.
type Store interface {
	PutFatwa(ctx context.Context, fatwa *models.Fatwa) error
	GetFatwa(ctx context.Context, id string) (*models.Fatwa, error)
	// GetFatwasByIDs returns records for the given IDs, in input-ID order.
	// Missing IDs are skipped, not errors.
	GetFatwasByIDs(ctx context.Context, ids []string) ([]*models.Fatwa, error)
	// ListFatwas pages through the corpus for indexing jobs.
	ListFatwas(ctx context.Context, offset, limit int) ([]*models.Fatwa, error)
	CountFatwas(ctx context.Context) (int64, error)
	Close() error
}
