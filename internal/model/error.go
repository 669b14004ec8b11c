package model

import (
	"errors"
	"fmt"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Success        bool     `json:"success"`
	Message        string   `json:"message"`
	Error          string   `json:"error,omitempty"`
	RequiredFields []string `json:"required_fields,omitempty"`
	RequestID      string   `json:"request_id,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeInvalidContent   = "INVALID_CONTENT_TYPE"
	ErrCodePayloadTooLarge  = "PAYLOAD_TOO_LARGE"
	ErrCodeMissingField     = "MISSING_FIELD"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeInvalidID        = "INVALID_ID"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code           string
	Message        string
	RequiredFields []string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so wrapped copies compare equal to the sentinels.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound = NewDomainError(ErrCodeProductNotFound, "product not found")
	ErrInvalidID       = NewDomainError(ErrCodeInvalidID, "invalid product ID, must be a positive integer")
	ErrValidation      = NewDomainError(ErrCodeValidation, "invalid product data")
	ErrMissingFields   = &DomainError{
		Code:           ErrCodeMissingField,
		Message:        "all fields are required (name, description, price)",
		RequiredFields: []string{"name", "description", "price"},
	}

	ErrInvalidJSON        = NewDomainError(ErrCodeInvalidJSON, "invalid JSON in request body")
	ErrInvalidContentType = NewDomainError(ErrCodeInvalidContent, "Content-Type must be application/json")
	ErrPayloadTooLarge    = NewDomainError(ErrCodePayloadTooLarge, "request body is too large")
)

// NewValidationError creates a validation error with a specific message.
func NewValidationError(message string) *DomainError {
	return NewDomainError(ErrCodeValidation, message)
}

// NewProductNotFoundError creates a not-found error naming the product ID.
func NewProductNotFoundError(id int64) *DomainError {
	return NewDomainError(ErrCodeProductNotFound, fmt.Sprintf("product with ID %d not found", id))
}

// IsValidationError reports whether err is a client input error.
func IsValidationError(err error) bool {
	var de *DomainError
	if !errors.As(err, &de) {
		return false
	}
	switch de.Code {
	case ErrCodeValidation, ErrCodeMissingField, ErrCodeInvalidID, ErrCodeInvalidJSON, ErrCodeInvalidContent:
		return true
	}
	return false
}

// IsNotFoundError reports whether err signals a missing product.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrProductNotFound)
}
