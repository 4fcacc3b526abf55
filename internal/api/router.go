package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/meshackowase-commits/HOSTESserch/internal/api/middleware"
	"github.com/meshackowase-commits/HOSTESserch/internal/handlers"
	"github.com/meshackowase-commits/HOSTESserch/internal/store"
	"github.com/meshackowase-commits/HOSTESserch/internal/web"
)

// Options configures the router.
type Options struct {
	// RateLimit is applied when Redis is configured.
	RateLimit middleware.RateLimiterConfig
}

// NewRouter creates and configures the HTTP router. redisStore may be nil,
// in which case rate limiting is disabled.
func NewRouter(logger zerolog.Logger, dataStore store.DataStore, redisStore *store.RedisStore, pages *web.Renderer, opts Options) *chi.Mux {
	r := chi.NewRouter()

	// Metrics middleware (first to capture all requests)
	r.Use(middleware.Metrics)

	// Security middleware (order matters!)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.MaxBodySize(64 * 1024)) // 64KB max body
	r.Use(middleware.ValidateRequest)

	// Standard middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	// CORS - the JSON API is open to any origin
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.ProfileHeader},
		ExposedHeaders:   []string{"Content-Disposition", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Resolve the caller's profile for every route
	identity := middleware.NewIdentity(dataStore, logger)
	r.Use(identity.Resolve)

	// Rate limiting, keyed by the resolved profile or the client IP
	if redisStore != nil {
		limiter := middleware.NewRateLimiter(redisStore.Client(), logger, opts.RateLimit)
		r.Use(limiter.Middleware)
	} else {
		logger.Warn().Msg("Redis not configured, rate limiting disabled")
	}

	h := handlers.NewHandler(dataStore, redisStore, pages, logger)

	// Metrics endpoint (for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", h.Health)

	// Pages
	r.Get("/", h.LandingPage)
	r.Get("/hostels", h.ListingPage)
	r.Get("/hostel/{id}", h.HostelPage)
	r.Post("/hostel/{id}/book", h.SubmitBookingPage)

	r.Route("/api", func(r chi.Router) {
		// Public routes (no profile required)
		r.Get("/", h.Root)
		r.Get("/stats", h.Stats)
		r.Get("/filters", h.ListFilters)
		r.Get("/hostels", h.ListHostels)
		r.Get("/hostels/{id}", h.GetHostel)
		r.Get("/locations", h.ListLocations)
		r.Post("/profiles", h.CreateProfile)

		// Routes acting as a profile
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireProfile)

			r.Post("/hostels", h.CreateHostel)
			r.Patch("/hostels/{id}", h.UpdateHostel)
			r.Post("/hostels/{id}/bookings", h.CreateBooking)

			r.Get("/bookings", h.ListBookings)
			r.Get("/bookings/export.xlsx", h.ExportBookings)
			r.Get("/bookings/{id}", h.GetBooking)
			r.Post("/bookings/{id}/status", h.UpdateBookingStatus)

			r.Get("/profiles/{userID}", h.GetProfile)
			r.Patch("/profiles/{userID}", h.UpdateProfile)

			r.Post("/locations", h.CreateLocation)
			r.Patch("/locations/{id}", h.UpdateLocation)

			r.Get("/chat/rooms", h.ListChatRooms)
			r.Post("/chat/rooms", h.CreateChatRoom)
			r.Get("/chat/rooms/{id}/messages", h.ListMessages)
			r.Post("/chat/rooms/{id}/messages", h.PostMessage)
		})
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		if strings.HasPrefix(req.URL.Path, "/api") {
			h.Error(w, http.StatusNotFound, "not found")
			return
		}
		h.NotFoundPage(w, req)
	})

	return r
}
