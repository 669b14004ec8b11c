package model

import "time"

// Response is the success envelope shared by every API endpoint.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// NewListResponse wraps a collection and its size.
func NewListResponse[T any](items []T, message string) Response[[]T] {
	if items == nil {
		items = []T{}
	}
	count := len(items)
	return Response[[]T]{
		Success: true,
		Data:    items,
		Count:   &count,
		Message: message,
	}
}

// NewResponse wraps a single value.
func NewResponse[T any](data T, message string) Response[T] {
	return Response[T]{
		Success: true,
		Data:    data,
		Message: message,
	}
}
