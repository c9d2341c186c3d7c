package api

import (
	"net/http"
	"relocation-route-service/internal/api/handlers"
	"relocation-route-service/internal/platform/logging"
	"relocation-route-service/internal/ports"
	"relocation-route-service/internal/workflow"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Dependencies are the ports and services the HTTP layer is built from.
type Dependencies struct {
	Locations      ports.LocationRepository
	Routes         workflow.RouteResolver
	Sessions       *workflow.Store
	HasMapboxToken bool
	AllowedOrigins []string
	Log            *zap.Logger
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Dependencies) http.Handler {
	log := logging.OrNop(deps.Log)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestContext)
	r.Use(loggingMiddleware(log))
	r.Use(middleware.Recoverer)

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Location", middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	configHandler := &handlers.ConfigHandler{HasMapboxToken: deps.HasMapboxToken, Log: log}
	dashboardHandler := &handlers.DashboardHandler{Repo: deps.Locations, Log: log}
	routeHandler := &handlers.RouteHandler{Resolver: deps.Routes, Log: log}
	sessionHandler := &handlers.SessionHandler{
		Store: deps.Sessions,
		Repo:  deps.Locations,
		Log:   log,
	}

	r.Get("/health", handlers.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/config", configHandler.Get)
		r.Get("/dashboard", dashboardHandler.Get)
		r.Post("/routes/batch", routeHandler.Batch)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", sessionHandler.Get)
				r.Post("/browser/open", sessionHandler.OpenBrowser)
				r.Post("/browser/close", sessionHandler.CloseBrowser)
				r.Post("/select", sessionHandler.Select)
				r.Post("/confirm", sessionHandler.Confirm)
				r.Post("/confirmation/dismiss", sessionHandler.DismissConfirmation)
			})
		})
	})

	return r
}
