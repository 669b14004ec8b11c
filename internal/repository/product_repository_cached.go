package repository

import (
	"context"
	"errors"
	"fmt"

	"product-catalog/internal/cache"
	"product-catalog/internal/model"

	"github.com/rs/zerolog"
)

// Cache is the subset of cache.RedisCache used by the cached repository.
type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

const allProductsKey = "products:all"

func productKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

// cachedProductRepository is a read-through cache in front of another ProductRepository.
// Cache failures are logged and never fail the request.
type cachedProductRepository struct {
	repo   ProductRepository
	cache  Cache
	logger zerolog.Logger
}

// NewCachedProductRepository wraps repo with a cache.
func NewCachedProductRepository(repo ProductRepository, c Cache, logger zerolog.Logger) ProductRepository {
	return &cachedProductRepository{
		repo:   repo,
		cache:  c,
		logger: logger.With().Str("repository", "product-cached").Logger(),
	}
}

// GetAll returns all products, serving from cache when possible.
func (r *cachedProductRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.cache.Get(ctx, allProductsKey, &products)
	if err == nil {
		r.logger.Debug().Str("key", allProductsKey).Msg("cache hit")
		return products, nil
	}
	r.logMiss(allProductsKey, err)

	products, err = r.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, allProductsKey, products); err != nil {
		r.logger.Warn().Err(err).Str("key", allProductsKey).Msg("failed to cache products")
	}

	return products, nil
}

// GetByID returns a product, serving from cache when possible.
func (r *cachedProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	key := productKey(id)

	var product model.Product
	err := r.cache.Get(ctx, key, &product)
	if err == nil {
		r.logger.Debug().Str("key", key).Msg("cache hit")
		return &product, nil
	}
	r.logMiss(key, err)

	p, err := r.repo.GetByID(ctx, id)
	if err != nil || p == nil {
		return p, err
	}

	if err := r.cache.Set(ctx, key, p); err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("failed to cache product")
	}

	return p, nil
}

// Create inserts a product and invalidates the collection entry.
func (r *cachedProductRepository) Create(ctx context.Context, req model.CreateProductRequest) (*model.Product, error) {
	p, err := r.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, allProductsKey)
	return p, nil
}

// Delete removes a product and invalidates both its entry and the collection entry.
func (r *cachedProductRepository) Delete(ctx context.Context, id int64) (*model.Product, error) {
	p, err := r.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	if p != nil {
		r.invalidate(ctx, productKey(id), allProductsKey)
	}
	return p, nil
}

func (r *cachedProductRepository) invalidate(ctx context.Context, keys ...string) {
	if err := r.cache.Delete(ctx, keys...); err != nil {
		r.logger.Warn().Err(err).Strs("keys", keys).Msg("failed to invalidate cache")
		return
	}
	r.logger.Debug().Strs("keys", keys).Msg("cache invalidated")
}

func (r *cachedProductRepository) logMiss(key string, err error) {
	if errors.Is(err, cache.ErrMiss) {
		r.logger.Debug().Str("key", key).Msg("cache miss")
		return
	}
	r.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
}
