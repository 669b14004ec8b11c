package repository

import (
	"context"

	"product-catalog/internal/model"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves all products, newest first.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	// Returns nil without error when the product does not exist.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// Create inserts a validated product and returns it with its assigned ID and timestamps.
	Create(ctx context.Context, req model.CreateProductRequest) (*model.Product, error)

	// Delete removes a product and returns the deleted row.
	// Returns nil without error when the product does not exist.
	Delete(ctx context.Context, id int64) (*model.Product, error)
}
