package repository

import (
	"context"
	"errors"

	"quotedesk_backend/internal/leads/domain"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a lead id is not present in the collection.
var ErrNotFound = errors.New("lead not found")

// LeadsRepository owns the persisted lead collection. Views hold transient
// copies and write back through it after any mutation. List order is
// insertion order unless a view explicitly sorts.
type LeadsRepository interface {
	// LoadAll returns the whole collection. A missing or malformed stored
	// payload is recovered by reinitializing from the seed dataset.
	LoadAll(ctx context.Context) ([]domain.Lead, error)
	// SaveAll replaces the whole collection, keeping the legacy mirror key
	// in sync.
	SaveAll(ctx context.Context, leads []domain.Lead) error
	// FindByID returns one lead or ErrNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (domain.Lead, error)
	// Upsert inserts or replaces one lead, appending new leads at the end.
	Upsert(ctx context.Context, lead domain.Lead) error
	// Reset replaces the collection with the seed dataset and returns it.
	Reset(ctx context.Context) ([]domain.Lead, error)
}
