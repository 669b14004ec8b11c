// Package localstore persists the on-device product collection used when the
// catalog API is unreachable.
package localstore

import (
	"context"
	"encoding/json"

	"product-catalog/internal/model"

	"github.com/rs/zerolog"
)

// StorageKey is the single key the collection is stored under.
const StorageKey = "products_dummy_data"

// Store reads and writes the local product collection. Storage failures never
// reach callers: reads fall back to the seed set and writes are dropped.
type Store struct {
	backend Backend
	seed    []model.Product
	logger  zerolog.Logger
}

// New creates a store over backend, seeded with seed on first use.
func New(backend Backend, seed []model.Product, logger zerolog.Logger) *Store {
	return &Store{
		backend: backend,
		seed:    cloneProducts(seed),
		logger:  logger.With().Str("component", "localstore").Logger(),
	}
}

// Load returns the persisted collection. When nothing is stored yet the seed
// set is written and returned; when storage fails a copy of the seed is
// returned without persisting.
func (s *Store) Load(ctx context.Context) []model.Product {
	raw, ok, err := s.backend.Get(ctx, StorageKey)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to read local products, using seed")
		return cloneProducts(s.seed)
	}

	if !ok {
		s.logger.Info().Int("count", len(s.seed)).Msg("seeding local products")
		s.Save(ctx, s.seed)
		return cloneProducts(s.seed)
	}

	var products []model.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		s.logger.Warn().Err(err).Msg("corrupt local products, using seed")
		return cloneProducts(s.seed)
	}
	if products == nil {
		products = []model.Product{}
	}

	return products
}

// Save overwrites the persisted collection.
func (s *Store) Save(ctx context.Context, products []model.Product) {
	if products == nil {
		products = []model.Product{}
	}

	raw, err := json.Marshal(products)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode local products")
		return
	}

	if err := s.backend.Put(ctx, StorageKey, raw); err != nil {
		s.logger.Warn().Err(err).Msg("failed to save local products")
	}
}

// NextID returns one more than the largest stored ID, or 1 when empty.
func (s *Store) NextID(ctx context.Context) int64 {
	var highest int64
	for _, p := range s.Load(ctx) {
		if p.ID > highest {
			highest = p.ID
		}
	}
	return highest + 1
}

// Clear removes the persisted collection; the next Load reseeds.
func (s *Store) Clear(ctx context.Context) {
	if err := s.backend.Delete(ctx, StorageKey); err != nil {
		s.logger.Warn().Err(err).Msg("failed to clear local products")
	}
}

// Reset overwrites the persisted collection with the seed set.
func (s *Store) Reset(ctx context.Context) {
	s.Save(ctx, s.seed)
}

func cloneProducts(products []model.Product) []model.Product {
	out := make([]model.Product, len(products))
	copy(out, products)
	return out
}
