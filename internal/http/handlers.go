package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	mongoadapter "github.com/alhaqtravel/umrah-booking/internal/adapters/mongo"
	redisadapter "github.com/alhaqtravel/umrah-booking/internal/adapters/redis"
	"github.com/alhaqtravel/umrah-booking/internal/auth"
	"github.com/alhaqtravel/umrah-booking/internal/config"
	"github.com/alhaqtravel/umrah-booking/internal/domain"
	"github.com/alhaqtravel/umrah-booking/internal/idempotency"
	"github.com/alhaqtravel/umrah-booking/internal/observability"
	bookingsvc "github.com/alhaqtravel/umrah-booking/internal/service/booking"
)

type Handlers struct {
	cfg     *config.Config
	svc     bookingsvc.UseCase
	catalog *mongoadapter.CatalogRepository
	cache   *redisadapter.Cache
	audit   *mongoadapter.AuditLogger
	idemp   *idempotency.Idempotency
	logger  observability.Logger
}

func NewHandlers(cfg *config.Config, svc bookingsvc.UseCase, catalog *mongoadapter.CatalogRepository, cache *redisadapter.Cache, audit *mongoadapter.AuditLogger, idemp *idempotency.Idempotency, logger observability.Logger) *Handlers {
	return &Handlers{
		cfg:     cfg,
		svc:     svc,
		catalog: catalog,
		cache:   cache,
		audit:   audit,
		idemp:   idemp,
		logger:  logger,
	}
}

func (h *Handlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
	key := r.Header.Get("Idempotency-Key")
	if existing, err := h.idemp.Get(r.Context(), key); err == nil && existing != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(existing.Status)
		w.Write(existing.Result)
		return
	}

	var in bookingsvc.CreateBookingInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}

	actor, _ := auth.UserFrom(r.Context())
	booking, err := h.svc.CreateBooking(r.Context(), actor, in)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := toBookingResponse(*booking)
	data, _ := json.Marshal(resp)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	w.Write(data)

	if err := h.idemp.Set(r.Context(), key, idempotency.Response{Status: http.StatusCreated, Result: data}); err != nil {
		h.logger.Warn("failed to store idempotent response: ", err)
	}
}

func (h *Handlers) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.UserFrom(r.Context())
	bookings, err := h.svc.ListMyBookings(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponses(bookings))
}

func (h *Handlers) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, &domain.ValidationError{Field: "id", Message: "invalid booking id"})
		return
	}

	actor, _ := auth.UserFrom(r.Context())
	booking, err := h.svc.GetBooking(r.Context(), actor, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponse(*booking))
}

func (h *Handlers) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BookingID uuid.UUID `json:"booking_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}

	actor, _ := auth.UserFrom(r.Context())
	clientSecret, err := h.svc.CreatePaymentIntent(r.Context(), actor, req.BookingID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"clientSecret": clientSecret})
}

func (h *Handlers) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BookingID    uuid.UUID          `json:"booking_id"`
		ClientSecret string             `json:"client_secret"`
		Card         domain.CardDetails `json:"card"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}

	actor, _ := auth.UserFrom(r.Context())
	booking, err := h.svc.ConfirmPayment(r.Context(), actor, req.BookingID, req.ClientSecret, req.Card)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponse(*booking))
}

func (h *Handlers) AdminListBookings(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.UserFrom(r.Context())
	bookings, err := h.svc.ListAllBookings(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponses(bookings))
}

func (h *Handlers) AdminOverrideStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, &domain.ValidationError{Field: "id", Message: "invalid booking id"})
		return
	}

	var req struct {
		Status domain.BookingStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}

	actor, _ := auth.UserFrom(r.Context())
	booking, err := h.svc.OverrideStatus(r.Context(), actor, id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponse(*booking))
}

func (h *Handlers) AdminStats(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.UserFrom(r.Context())
	stats, err := h.svc.Stats(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{
		"total_bookings":          stats.TotalBookings,
		"pending_requests":        stats.PendingRequests,
		"confirmed_revenue_cents": stats.ConfirmedRevenueCents,
	})
}

func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handlers) Readyz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Ready"))
}
