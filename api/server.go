/*
server.go - Router and middleware wiring

PURPOSE:
  Assembles the chi router: panic recovery, request IDs, structured request
  logging, Prometheus metrics, CORS, the REST routes, and the /metrics
  scrape endpoint.

SEE ALSO:
  - handlers.go: Endpoint implementations
  - middleware.go: Logging and metrics middleware
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/warp/hotel-engine/observability"
)

// NewRouter builds the HTTP router around a handler.
func NewRouter(h *Handler, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(Logger(log))
	r.Use(Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/floors", h.ListFloors)
		r.Post("/floors", h.CreateFloor)

		r.Get("/rooms", h.ListRooms)
		r.Post("/rooms", h.CreateRoom)

		r.Get("/amenities", h.ListAmenities)
		r.Post("/amenities", h.CreateAmenity)

		r.Post("/users", h.CreateUser)

		r.Get("/availability", h.SearchAvailability)

		r.Get("/bookings", h.ListBookings)
		r.Post("/bookings", h.Reserve)
		r.Get("/bookings/{id}", h.GetBooking)
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	reg := observability.InitRegistry()
	r.Get("/metrics", observability.MetricsHandler(reg).ServeHTTP)

	return r
}
