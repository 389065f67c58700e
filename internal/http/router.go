package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alhaqtravel/umrah-booking/internal/auth"
	"github.com/alhaqtravel/umrah-booking/internal/observability"
	"github.com/alhaqtravel/umrah-booking/internal/rateLimit"
)

func SetupRouter(h *Handlers, logger observability.Logger, rl *rateLimit.RateLimiter, verifier *auth.Verifier) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(LoggerMiddleware(logger))
	r.Use(TracingMiddleware)
	r.Use(MetricsMiddleware)
	r.Use(AuthMiddleware(verifier))

	// Public catalog reads.
	r.Get("/v1/packages", h.ListPackages)
	r.Get("/v1/packages/{id}", h.GetPackage)
	r.Get("/v1/hotels", h.ListHotels)
	r.Get("/v1/transfers", h.ListTransfers)
	r.Get("/v1/flights", h.ListFlights)

	// Customer booking and payment workflow.
	r.Group(func(r chi.Router) {
		r.Use(RequireAuth)
		r.Use(RateLimitMiddleware(rl))

		r.With(IdempotencyKeyRequired).Post("/v1/bookings", h.CreateBooking)
		r.Get("/v1/bookings", h.ListMyBookings)
		r.Get("/v1/bookings/{id}", h.GetBooking)
		r.Post("/v1/payments/intent", h.CreatePaymentIntent)
		r.Post("/v1/payments/confirm", h.ConfirmPayment)
	})

	// Admin console.
	r.Route("/v1/admin", func(r chi.Router) {
		r.Use(RequireAuth)
		r.Use(RequireAdmin)

		r.Get("/bookings", h.AdminListBookings)
		r.Patch("/bookings/{id}/status", h.AdminOverrideStatus)
		r.Get("/stats", h.AdminStats)

		r.Get("/packages", h.AdminListPackages)
		r.Post("/packages", h.AdminCreatePackage)
		r.Put("/packages/{id}", h.AdminUpdatePackage)
		r.Delete("/packages/{id}", h.AdminDeletePackage)
		r.Patch("/packages/{id}/status", h.AdminSetPackageStatus)

		r.Post("/hotels", h.AdminCreateHotel)
		r.Put("/hotels/{id}", h.AdminUpdateHotel)
		r.Delete("/hotels/{id}", h.AdminDeleteHotel)
		r.Patch("/hotels/{id}/status", h.AdminSetHotelStatus)

		r.Post("/transfers", h.AdminCreateTransfer)
		r.Put("/transfers/{id}", h.AdminUpdateTransfer)
		r.Delete("/transfers/{id}", h.AdminDeleteTransfer)
		r.Patch("/transfers/{id}/status", h.AdminSetTransferStatus)

		r.Post("/flights", h.AdminCreateFlight)
		r.Put("/flights/{id}", h.AdminUpdateFlight)
		r.Delete("/flights/{id}", h.AdminDeleteFlight)
		r.Patch("/flights/{id}/status", h.AdminSetFlightStatus)
	})

	r.Get("/v1/healthz", h.Healthz)
	r.Get("/v1/readyz", h.Readyz)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}
