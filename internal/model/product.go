package model

import "time"

// Product field limits.
const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
	MaxPrice             = 999_999_999.99
	MaxPriceDecimals     = 2
)

// Product represents a catalogue entry.
type Product struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CreateProductRequest is the payload for creating a product.
type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// DeletedProduct is returned after a successful delete.
type DeletedProduct struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
