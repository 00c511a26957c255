package repository

import (
	"context"
	"encoding/json"
	"errors"

	"quotedesk_backend/internal/leads/domain"
	"quotedesk_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// leadsKey is the primary storage key for the serialized collection.
	leadsKey = "quotedesk:leads"
	// legacyLeadsKey is the compatibility mirror written by earlier intake
	// builds. It is kept in sync on every write and used as a read fallback.
	legacyLeadsKey = "leads"
)

// Store persists the lead collection as a single JSON document in Redis.
type Store struct {
	client *redis.Client
	log    *logger.Logger
}

// NewStore creates a Redis-backed lead repository.
func NewStore(client *redis.Client, log *logger.Logger) *Store {
	return &Store{client: client, log: log}
}

// Ping checks connectivity for health endpoints.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// LoadAll returns the stored collection. An absent or malformed payload is
// recovered by reinitializing from the seed dataset; the collection is never
// left in a partially parsed state.
func (s *Store) LoadAll(ctx context.Context) ([]domain.Lead, error) {
	payload, err := s.client.Get(ctx, leadsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		payload, err = s.client.Get(ctx, legacyLeadsKey).Bytes()
	}
	if errors.Is(err, redis.Nil) {
		return s.reinitialize(ctx, "empty store")
	}
	if err != nil {
		return nil, err
	}

	var leads []domain.Lead
	if err := json.Unmarshal(payload, &leads); err != nil {
		s.log.StoreError("unmarshal leads", err)
		return s.reinitialize(ctx, "malformed payload")
	}
	return leads, nil
}

// SaveAll replaces the collection, writing the primary key and the legacy
// mirror in one transaction so readers never observe them out of sync.
func (s *Store) SaveAll(ctx context.Context, leads []domain.Lead) error {
	if leads == nil {
		leads = []domain.Lead{}
	}
	payload, err := json.Marshal(leads)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, leadsKey, payload, 0)
	pipe.Set(ctx, legacyLeadsKey, payload, 0)
	_, err = pipe.Exec(ctx)
	return err
}

// FindByID returns one lead or ErrNotFound.
func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	leads, err := s.LoadAll(ctx)
	if err != nil {
		return domain.Lead{}, err
	}
	for _, lead := range leads {
		if lead.ID == id {
			return lead, nil
		}
	}
	return domain.Lead{}, ErrNotFound
}

// Upsert inserts or replaces one lead. New leads are appended, preserving
// insertion order for existing ones. Read-modify-write with last-write-wins
// is acceptable here: the collection is mutated from a single active view at
// a time.
func (s *Store) Upsert(ctx context.Context, lead domain.Lead) error {
	leads, err := s.LoadAll(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range leads {
		if leads[i].ID == lead.ID {
			leads[i] = lead
			replaced = true
			break
		}
	}
	if !replaced {
		leads = append(leads, lead)
	}

	return s.SaveAll(ctx, leads)
}

// Reset replaces the collection with the seed dataset.
func (s *Store) Reset(ctx context.Context) ([]domain.Lead, error) {
	seed := SeedLeads()
	if err := s.SaveAll(ctx, seed); err != nil {
		return nil, err
	}
	return seed, nil
}

func (s *Store) reinitialize(ctx context.Context, reason string) ([]domain.Lead, error) {
	s.log.Info("reinitializing lead store from seed data", "reason", reason)
	return s.Reset(ctx)
}

// Compile-time check that Store implements LeadsRepository.
var _ LeadsRepository = (*Store)(nil)
