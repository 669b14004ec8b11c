package service

import (
	"context"
	"fmt"

	"product-catalog/internal/events"
	"product-catalog/internal/model"
	"product-catalog/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	publisher   events.Publisher
	logger      zerolog.Logger
}

// NewProductService creates a new product service. A nil publisher disables events.
func NewProductService(productRepo repository.ProductRepository, publisher events.Publisher, logger zerolog.Logger) ProductService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &productService{
		productRepo: productRepo,
		publisher:   publisher,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// GetAll retrieves every product, newest first.
func (s *productService) GetAll(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get all products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().Int("count", len(products)).Msg("retrieved products")

	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if id <= 0 {
		s.logger.Warn().Int64("product_id", id).Msg("invalid product ID")
		return nil, model.ErrInvalidID
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Int64("product_id", id).Msg("product not found")
		return nil, model.NewProductNotFoundError(id)
	}

	return product, nil
}

// Create validates and stores a new product.
func (s *productService) Create(ctx context.Context, req model.CreateProductRequest) (*model.Product, error) {
	draft, err := model.ValidateDraft(req)
	if err != nil {
		s.logger.Debug().Err(err).Msg("product validation failed")
		return nil, err
	}

	product, err := s.productRepo.Create(ctx, draft)
	if err != nil {
		s.logger.Error().Err(err).Str("name", draft.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Int64("product_id", product.ID).
		Str("name", product.Name).
		Float64("price", product.Price).
		Msg("product created")

	if err := s.publisher.ProductCreated(ctx, product); err != nil {
		s.logger.Warn().Err(err).Int64("product_id", product.ID).Msg("failed to publish product.created")
	}

	return product, nil
}

// Delete removes a product and returns its id and name.
func (s *productService) Delete(ctx context.Context, id int64) (*model.DeletedProduct, error) {
	if id <= 0 {
		s.logger.Warn().Int64("product_id", id).Msg("invalid product ID")
		return nil, model.ErrInvalidID
	}

	product, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Int64("product_id", id).Msg("product not found")
		return nil, model.NewProductNotFoundError(id)
	}

	deleted := &model.DeletedProduct{ID: product.ID, Name: product.Name}

	s.logger.Info().Int64("product_id", deleted.ID).Str("name", deleted.Name).Msg("product deleted")

	if err := s.publisher.ProductDeleted(ctx, deleted); err != nil {
		s.logger.Warn().Err(err).Int64("product_id", deleted.ID).Msg("failed to publish product.deleted")
	}

	return deleted, nil
}
