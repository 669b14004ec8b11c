package model

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ValidateDraft checks a create request against the product field constraints and
// returns a copy with name and description trimmed.
func ValidateDraft(req CreateProductRequest) (CreateProductRequest, error) {
	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)

	if name == "" {
		return CreateProductRequest{}, NewValidationError("product name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return CreateProductRequest{}, NewValidationError("product name cannot exceed 100 characters")
	}

	if description == "" {
		return CreateProductRequest{}, NewValidationError("product description cannot be empty")
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return CreateProductRequest{}, NewValidationError("product description cannot exceed 500 characters")
	}

	if err := ValidatePrice(req.Price); err != nil {
		return CreateProductRequest{}, err
	}

	return CreateProductRequest{
		Name:        name,
		Description: description,
		Price:       req.Price,
	}, nil
}

// ValidatePrice checks that price is positive, within MaxPrice and has at most
// MaxPriceDecimals decimal places, so it is stored without rounding.
func ValidatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return NewValidationError("price must be a valid number greater than 0")
	}
	if price > MaxPrice {
		return NewValidationError("price cannot exceed 999,999,999.99")
	}
	if decimalPlaces(price) > MaxPriceDecimals {
		return NewValidationError("price cannot have more than 2 decimal places")
	}
	return nil
}

// decimalPlaces counts the digits after the point in the shortest decimal
// form of f.
func decimalPlaces(f float64) int {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}
