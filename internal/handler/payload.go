package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"product-catalog/internal/model"
)

// maxBodyBytes caps request bodies at 10MB.
const maxBodyBytes = 10 << 20

// createProductPayload keeps raw fields so absent, null and mistyped values
// can be told apart before validation.
type createProductPayload struct {
	Name        json.RawMessage `json:"name"`
	Description json.RawMessage `json:"description"`
	Price       json.RawMessage `json:"price"`
}

// decodeCreateRequest reads a create payload from the request body.
func decodeCreateRequest(w http.ResponseWriter, r *http.Request) (model.CreateProductRequest, error) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var payload createProductPayload
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return model.CreateProductRequest{}, model.ErrPayloadTooLarge
		}
		if errors.Is(err, io.EOF) {
			return model.CreateProductRequest{}, model.ErrMissingFields
		}
		return model.CreateProductRequest{}, model.ErrInvalidJSON
	}

	return payload.toRequest()
}

func (p createProductPayload) toRequest() (model.CreateProductRequest, error) {
	if isBlank(p.Name) || isBlank(p.Description) || isAbsent(p.Price) {
		return model.CreateProductRequest{}, model.ErrMissingFields
	}

	var req model.CreateProductRequest
	if json.Unmarshal(p.Name, &req.Name) != nil || json.Unmarshal(p.Description, &req.Description) != nil {
		return model.CreateProductRequest{}, model.NewValidationError("product name and description must be strings")
	}

	price, err := parsePrice(p.Price)
	if err != nil {
		return model.CreateProductRequest{}, model.NewValidationError("price must be a valid number greater than 0")
	}
	if err := model.ValidatePrice(price); err != nil {
		return model.CreateProductRequest{}, err
	}
	req.Price = price

	return req, nil
}

// parsePrice accepts a JSON number or a numeric string.
func parsePrice(raw json.RawMessage) (float64, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, err
	}
	return n.Float64()
}

func isAbsent(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func isBlank(raw json.RawMessage) bool {
	return isAbsent(raw) || bytes.Equal(bytes.TrimSpace(raw), []byte(`""`))
}
