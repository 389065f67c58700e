package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/alhaqtravel/umrah-booking/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the domain error taxonomy onto HTTP statuses. Payment
// declines keep the processor's message verbatim; everything unexpected is a
// generic retryable storage failure.
func writeError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": validationErr.Message,
			"field": validationErr.Field,
		})
		return
	}

	var paymentErr *domain.PaymentError
	if errors.As(err, &paymentErr) {
		writeJSON(w, http.StatusPaymentRequired, map[string]string{"error": paymentErr.Message})
		return
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "sign in required"})
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "admin access required"})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrSerializationFailure):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "conflict, try again"})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "temporary failure, try again"})
	}
}

type bookingResponse struct {
	ID             string               `json:"id"`
	PackageID      string               `json:"package_id"`
	UserID         string               `json:"user_id"`
	CustomerName   string               `json:"customer_name"`
	CustomerEmail  string               `json:"customer_email"`
	CustomerPhone  string               `json:"customer_phone"`
	NumberOfRooms  int                  `json:"number_of_rooms"`
	NumberOfGuests int                  `json:"number_of_guests"`
	TotalCents     int64                `json:"total_cents"`
	Status         domain.BookingStatus `json:"status"`
	PaymentStatus  domain.PaymentStatus `json:"payment_status"`
	PersonalInfo   *domain.PersonalInfo `json:"personal_info,omitempty"`
	CreatedAt      string               `json:"created_at"`
}

func toBookingResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		ID:             b.ID.String(),
		PackageID:      b.PackageID.String(),
		UserID:         b.UserID.String(),
		CustomerName:   b.CustomerName,
		CustomerEmail:  b.CustomerEmail,
		CustomerPhone:  b.CustomerPhone,
		NumberOfRooms:  b.NumberOfRooms,
		NumberOfGuests: b.NumberOfGuests,
		TotalCents:     b.TotalCents,
		Status:         b.Status,
		PaymentStatus:  b.PaymentStatus,
		PersonalInfo:   b.PersonalInfo,
		CreatedAt:      b.CreatedAt.Format(time.RFC3339),
	}
}

func toBookingResponses(bs []domain.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBookingResponse(b))
	}
	return out
}
