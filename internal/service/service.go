package service

import (
	"context"

	"product-catalog/internal/model"
)

// ProductService defines operations for product management.
type ProductService interface {
	// GetAll retrieves every product, newest first.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// Create validates and stores a new product.
	Create(ctx context.Context, req model.CreateProductRequest) (*model.Product, error)

	// Delete removes a product and returns its id and name.
	Delete(ctx context.Context, id int64) (*model.DeletedProduct, error)
}
