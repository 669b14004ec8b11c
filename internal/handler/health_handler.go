package handler

import (
	"net/http"
	"time"

	"product-catalog/internal/model"
)

// Descriptor is returned by the index route.
type Descriptor struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message"`
	Version     string              `json:"version"`
	Description string              `json:"description"`
	Endpoints   []EndpointReference `json:"endpoints"`
}

// EndpointReference describes one route of the API.
type EndpointReference struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

var endpoints = []EndpointReference{
	{Method: http.MethodGet, Path: "/health", Description: "server health check"},
	{Method: http.MethodGet, Path: "/api/products", Description: "list every product, newest first"},
	{Method: http.MethodGet, Path: "/api/products/{id}", Description: "get a product by ID"},
	{Method: http.MethodPost, Path: "/api/products", Description: "create a product from {name, description, price}"},
	{Method: http.MethodDelete, Path: "/api/products/{id}", Description: "delete a product by ID"},
}

// Health handles GET /health requests.
func Health(now func() time.Time) http.HandlerFunc {
	if now == nil {
		now = time.Now
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, model.HealthResponse{
			Success:   true,
			Message:   "server is running",
			Timestamp: now().UTC(),
		})
	}
}

// Index handles GET / and describes the API.
func Index(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Descriptor{
			Success:     true,
			Message:     "product catalog API",
			Version:     version,
			Description: "REST API for managing products backed by PostgreSQL",
			Endpoints:   endpoints,
		})
	}
}
