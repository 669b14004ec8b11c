package router

import (
	"net/http"

	"product-catalog/internal/handler"
	"product-catalog/internal/middleware"

	"github.com/rs/zerolog"
)

// Version is reported by the index route.
const Version = "1.0.0"

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	allowedOrigin string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()
	notFound := handler.NotFound(logger)
	health := handler.Health(nil)
	index := handler.Index(Version)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			handler.MethodNotAllowed(w, r, http.MethodGet, logger)
			return
		}
		health(w, r)
	})

	// Product collection and item routes
	productRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/products" || r.URL.Path == "/api/products/" {
			switch r.Method {
			case http.MethodGet:
				productHandler.GetAll(w, r)
			case http.MethodPost:
				productHandler.Create(w, r)
			default:
				handler.MethodNotAllowed(w, r, "GET, POST", logger)
			}
			return
		}

		switch r.Method {
		case http.MethodGet:
			productHandler.GetByID(w, r)
		case http.MethodDelete:
			productHandler.Delete(w, r)
		default:
			handler.MethodNotAllowed(w, r, "GET, DELETE", logger)
		}
	}

	// Register product routes (both with and without trailing slash)
	mux.HandleFunc("/api/products", productRouteHandler)
	mux.HandleFunc("/api/products/", productRouteHandler)

	// "/" matches every unregistered path
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			notFound(w, r)
			return
		}
		if r.Method != http.MethodGet {
			handler.MethodNotAllowed(w, r, http.MethodGet, logger)
			return
		}
		index(w, r)
	})

	// Apply middleware in order: RequestID -> Recovery -> Logging -> CORS -> RequireJSON
	var h http.Handler = mux
	h = middleware.RequireJSON(logger)(h)
	h = middleware.CORS(allowedOrigin)(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestID(h)

	return h
}
