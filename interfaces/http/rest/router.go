package rest

import (
	"context"
	"net/http"
	"time"

	"wayfarer-backend/interfaces/http/rest/handlers"
	"wayfarer-backend/interfaces/http/rest/middleware"
	"wayfarer-backend/pkg/auth"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// ReadyCheck reports whether a dependency is ready to serve traffic
type ReadyCheck func(ctx context.Context) error

// Router creates and configures the HTTP router
type Router struct {
	authHandler      *handlers.AuthHandler
	userHandler      *handlers.UserHandler
	itineraryHandler *handlers.ItineraryHandler
	validator        *auth.JWTValidator
	readyChecks      map[string]ReadyCheck
	metrics          middleware.LatencyRecorder
	enableCORS       bool
	logger           *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	itineraryHandler *handlers.ItineraryHandler,
	validator *auth.JWTValidator,
	enableCORS bool,
	logger *zap.Logger,
) *Router {
	return &Router{
		authHandler:      authHandler,
		userHandler:      userHandler,
		itineraryHandler: itineraryHandler,
		validator:        validator,
		readyChecks:      make(map[string]ReadyCheck),
		enableCORS:       enableCORS,
		logger:           logger,
	}
}

// AddReadyCheck registers a named dependency check for /ready
func (rt *Router) AddReadyCheck(name string, check ReadyCheck) {
	rt.readyChecks[name] = check
}

// UseMetrics enables per-route latency recording
func (rt *Router) UseMetrics(recorder middleware.LatencyRecorder) {
	rt.metrics = recorder
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	if rt.metrics != nil {
		router.Use(middleware.RequestMetrics(rt.metrics))
	}

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*.wayfarer.app"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	router.Route("/api/v1", func(r chi.Router) {
		// Auth endpoints, no token required
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", rt.authHandler.Register)
			r.Post("/login", rt.authHandler.Login)
			r.Post("/refresh", rt.authHandler.Refresh)
		})

		// Public listing, no token required
		r.Get("/public/itineraries", rt.itineraryHandler.ListPublic)

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(rt.validator))

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", rt.userHandler.GetMe)
				r.Put("/me", rt.userHandler.UpdateMe)
			})

			r.Route("/itineraries", func(r chi.Router) {
				r.Post("/", rt.itineraryHandler.Create)
				r.Get("/", rt.itineraryHandler.List)
				r.Get("/{itineraryID}", rt.itineraryHandler.Get)
				r.Put("/{itineraryID}", rt.itineraryHandler.Update)
				r.Delete("/{itineraryID}", rt.itineraryHandler.Delete)
				r.Post("/{itineraryID}/activities", rt.itineraryHandler.AddActivity)
				r.Delete("/{itineraryID}/activities/{activityID}", rt.itineraryHandler.RemoveActivity)
			})
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck verifies registered dependencies. The cache is deliberately
// never part of readiness; the service serves traffic without it.
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
	defer cancel()

	for name, check := range rt.readyChecks {
		if err := check(ctx); err != nil {
			rt.logger.Warn("readiness check failed",
				zap.String("dependency", name),
				zap.Error(err),
			)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"not ready"}`))
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
