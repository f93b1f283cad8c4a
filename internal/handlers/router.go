package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Lixing-Zhang/course-catalog/internal/middleware"
	"github.com/Lixing-Zhang/course-catalog/internal/service"
)

// RouterConfig carries the HTTP settings the router needs
type RouterConfig struct {
	SessionCookie  string
	SessionTTL     time.Duration
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter wires middleware, the HTML page and the JSON API
func NewRouter(cfg RouterConfig, catalog *service.CatalogService, sessions *service.SessionService, log *slog.Logger) http.Handler {
	healthHandler := NewHealthHandler(sessions, log)
	catalogHandler := NewCatalogHandler(catalog, log)
	cartHandler := NewCartHandler(sessions, log)
	pageHandler := NewPageHandler(sessions, log)

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Session(cfg.SessionCookie, cfg.SessionTTL))
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(timeout))

	r.Get("/health", healthHandler.ServeHTTP)

	// HTML page
	r.Get("/", pageHandler.Index)
	r.Post("/search", pageHandler.Search)
	r.Post("/sort", pageHandler.Sort)
	r.Post("/cart/{itemId}/add", pageHandler.AddItem)
	r.Post("/cart/{itemId}/remove", pageHandler.RemoveItem)

	// JSON API
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           300,
		}))

		r.Get("/item", catalogHandler.ListItems)
		r.Get("/item/{itemId}", catalogHandler.GetItem)

		r.Get("/view", cartHandler.GetView)
		r.Put("/view/search", cartHandler.SetSearch)
		r.Put("/view/sort", cartHandler.SetSort)

		r.Get("/cart", cartHandler.GetCart)
		r.Post("/cart/{itemId}", cartHandler.AddItem)
		r.Delete("/cart/{itemId}", cartHandler.RemoveItem)

		r.Delete("/session", cartHandler.ResetSession)
	})

	return r
}
