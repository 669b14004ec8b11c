package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"product-catalog/internal/middleware"
	"product-catalog/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing useful left to tell the client.
		return
	}
}

// writeError maps err onto a status code and writes the error envelope.
// Domain errors keep their message; anything else is reported as a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	status := http.StatusInternalServerError
	resp := model.ErrorResponse{
		Success:   false,
		Message:   "internal server error",
		RequestID: middleware.RequestIDFromContext(r.Context()),
	}

	var de *model.DomainError
	if errors.As(err, &de) {
		status = statusForCode(de.Code)
		resp.Message = de.Message
		resp.Error = de.Code
		resp.RequiredFields = de.RequiredFields
	}

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).
		Int("status", status).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("request_id", resp.RequestID).
		Msg("handler error")

	writeJSON(w, status, resp)
}

func statusForCode(code string) int {
	switch code {
	case model.ErrCodeProductNotFound, model.ErrCodeNotFound:
		return http.StatusNotFound
	case model.ErrCodePayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case model.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case model.ErrCodeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// NotFound writes the envelope for unknown routes.
func NotFound(logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, model.NewDomainError(model.ErrCodeNotFound, "route "+r.Method+" "+r.URL.Path+" not found"), logger)
	}
}

// MethodNotAllowed writes the 405 envelope and advertises the allowed methods.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request, allow string, logger zerolog.Logger) {
	w.Header().Set("Allow", allow)
	writeError(w, r, model.NewDomainError(model.ErrCodeMethodNotAllowed, "method "+r.Method+" not allowed"), logger)
}
