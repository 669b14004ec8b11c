package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"product-catalog/internal/model"
	"product-catalog/internal/service"

	"github.com/rs/zerolog"
)

const productsPath = "/api/products/"

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// GetAll handles GET /api/products requests.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.GetAll(r.Context())
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.NewListResponse(products, "products retrieved successfully"))
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(r.URL.Path)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.NewResponse(product, "product retrieved successfully"))
}

// Create handles POST /api/products requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCreateRequest(w, r)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	product, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, model.NewResponse(product, "product created successfully"))
}

// Delete handles DELETE /api/products/{id} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(r.URL.Path)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.NewResponse(deleted, fmt.Sprintf("product %q deleted successfully", deleted.Name)))
}

// parseProductID extracts a positive integer ID from /api/products/{id}.
func parseProductID(path string) (int64, error) {
	raw := strings.TrimPrefix(path, productsPath)
	if raw == path || raw == "" {
		return 0, model.ErrInvalidID
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, model.ErrInvalidID
	}

	return id, nil
}
