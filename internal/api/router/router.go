package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bajo3/Emme-Client/internal/http/handlers"
	httpmiddleware "github.com/bajo3/Emme-Client/internal/http/middleware"
	"github.com/bajo3/Emme-Client/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	HealthHandler       *handlers.HealthHandler
	AgendaHandler       *handlers.AgendaHandler
	ReportsHandler      *handlers.ReportsHandler
	AppointmentsHandler *handlers.AppointmentsHandler
	MetricsHandler      http.Handler
	AdminAuthSecret     string
	CORSAllowedOrigins  []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public read endpoints
	r.Group(func(public chi.Router) {
		if cfg.HealthHandler != nil {
			public.Get("/health", cfg.HealthHandler.Check)
		}
		if cfg.AgendaHandler != nil {
			public.Get("/agenda/view", cfg.AgendaHandler.GetView)
		}
		if cfg.ReportsHandler != nil {
			public.Get("/reports", cfg.ReportsHandler.GetReport)
		}
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	// Mutations require the admin JWT. An empty secret keeps them closed.
	if cfg.AppointmentsHandler != nil {
		r.Group(func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
			admin.Patch("/appointments/{id}/status", cfg.AppointmentsHandler.ChangeStatus)
		})
	}

	return r
}
