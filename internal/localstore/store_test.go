package localstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"product-catalog/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingBackend fails every call.
type failingBackend struct{}

var errDiskFull = errors.New("disk full")

func (failingBackend) Get(context.Context, string) ([]byte, bool, error) { return nil, false, errDiskFull }
func (failingBackend) Put(context.Context, string, []byte) error { return errDiskFull }
func (failingBackend) Delete(context.Context, string) error { return errDiskFull }
func (failingBackend) Close() error { return nil }

var seedProducts = []model.Product{
	{ID: 1, Name: "Desk", Description: "Oak desk", Price: 120, CreatedAt: time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)},
	{ID: 2, Name: "Chair", Description: "Pine chair", Price: 45, CreatedAt: time.Date(2025, 9, 2, 10, 0, 0, 0, time.UTC)},
}

func TestStore_LoadSeedsOnFirstUse(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	store := New(backend, seedProducts, zerolog.Nop())

	products := store.Load(ctx)

	assert.Equal(t, seedProducts, products)

	_, ok, err := backend.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.True(t, ok, "seed should be persisted")
}

func TestStore_LoadReturnsPersisted(t *testing.T) {
	ctx := context.Background()
	store := New(NewMemoryBackend(), seedProducts, zerolog.Nop())

	saved := []model.Product{{ID: 9, Name: "Lamp", Description: "Desk lamp", Price: 30}}
	store.Save(ctx, saved)

	assert.Equal(t, saved, store.Load(ctx))
}

func TestStore_LoadIsolatesSeed(t *testing.T) {
	ctx := context.Background()
	store := New(failingBackend{}, seedProducts, zerolog.Nop())

	first := store.Load(ctx)
	first[0].Name = "mutated"

	assert.Equal(t, "Desk", store.Load(ctx)[0].Name)
}

func TestStore_StorageErrorsAreSwallowed(t *testing.T) {
	ctx := context.Background()
	store := New(failingBackend{}, seedProducts, zerolog.Nop())

	assert.Equal(t, seedProducts, store.Load(ctx))
	assert.NotPanics(t, func() {
		store.Save(ctx, []model.Product{{ID: 3}})
		store.Clear(ctx)
		store.Reset(ctx)
	})
	assert.Equal(t, int64(3), store.NextID(ctx))
}

func TestStore_CorruptDataFallsBackToSeed(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	require.NoError(t, backend.Put(ctx, StorageKey, []byte("{not json")))

	store := New(backend, seedProducts, zerolog.Nop())

	assert.Equal(t, seedProducts, store.Load(ctx))
}

func TestStore_NextID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		products []model.Product
		want     int64
	}{
		{name: "Empty collection", products: []model.Product{}, want: 1},
		{name: "Gap in ids", products: []model.Product{{ID: 1}, {ID: 5}}, want: 6},
		{name: "Unordered ids", products: []model.Product{{ID: 7}, {ID: 2}}, want: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := New(NewMemoryBackend(), nil, zerolog.Nop())
			store.Save(ctx, tt.products)

			assert.Equal(t, tt.want, store.NextID(ctx))
		})
	}
}

func TestStore_EmptySeed(t *testing.T) {
	ctx := context.Background()
	store := New(NewMemoryBackend(), nil, zerolog.Nop())

	products := store.Load(ctx)

	assert.NotNil(t, products)
	assert.Empty(t, products)
	assert.Equal(t, int64(1), store.NextID(ctx))
}

func TestStore_ClearAndReset(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	store := New(backend, seedProducts, zerolog.Nop())

	store.Save(ctx, []model.Product{{ID: 42, Name: "Lamp", Description: "Desk lamp", Price: 30}})

	store.Clear(ctx)
	_, ok, err := backend.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, seedProducts, store.Load(ctx), "load after clear reseeds")

	store.Save(ctx, []model.Product{})
	store.Reset(ctx)
	assert.Equal(t, seedProducts, store.Load(ctx))
}

func TestBoltBackend(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	backend, err := NewBoltBackend(path)
	require.NoError(t, err)

	_, ok, err := backend.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, backend.Put(ctx, StorageKey, []byte(`[]`)))
	require.NoError(t, backend.Close())

	// Data survives reopening the file.
	backend, err = NewBoltBackend(path)
	require.NoError(t, err)
	defer backend.Close()

	v, ok, err := backend.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`[]`), v)

	require.NoError(t, backend.Delete(ctx, StorageKey))
	_, ok, err = backend.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.False(t, ok)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, backend.Put(cancelled, StorageKey, []byte(`[]`)), context.Canceled)
}

func TestStore_WithBoltBackend(t *testing.T) {
	ctx := context.Background()
	backend, err := NewBoltBackend(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	defer backend.Close()

	store := New(backend, seedProducts, zerolog.Nop())
	products := store.Load(ctx)
	products = append(products, model.Product{ID: store.NextID(ctx), Name: "Lamp", Description: "Desk lamp", Price: 30})
	store.Save(ctx, products)

	reloaded := store.Load(ctx)
	require.Len(t, reloaded, 3)
	assert.Equal(t, int64(3), reloaded[2].ID)
	assert.True(t, seedProducts[0].CreatedAt.Equal(reloaded[0].CreatedAt))
}

func TestMemoryBackend_Closed(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	require.NoError(t, backend.Close())

	_, _, err := backend.Get(ctx, StorageKey)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, backend.Put(ctx, StorageKey, nil), ErrClosed)
	assert.ErrorIs(t, backend.Delete(ctx, StorageKey), ErrClosed)
}
