package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending        BookingStatus = "pending"
	BookingStatusPendingPayment BookingStatus = "pending_payment"
	BookingStatusConfirmed      BookingStatus = "confirmed"
	BookingStatusCancelled      BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

type Booking struct {
	ID             uuid.UUID
	PackageID      uuid.UUID
	UserID         uuid.UUID
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	NumberOfRooms  int
	NumberOfGuests int
	TotalCents     int64
	Status         BookingStatus
	PaymentStatus  PaymentStatus
	// PaymentIntentSecret is the client secret minted for this booking's
	// amount. Confirmation must present exactly this secret; empty until an
	// intent has been created.
	PaymentIntentSecret string
	PersonalInfo        *PersonalInfo
	CreatedAt           time.Time
}

// NewBooking builds a booking for the given package price. The total is
// computed here, once; it is never re-derived after creation. A booking with
// traveler personal info enters the payment-gated flow and starts in
// pending_payment, a plain booking starts in pending.
func NewBooking(packageID, userID uuid.UUID, priceCents int64, rooms, guests int, name, email, phone string, info *PersonalInfo) (Booking, error) {
	if rooms < 1 {
		return Booking{}, &ValidationError{Field: "number of rooms", Message: "must be at least 1"}
	}
	if guests < 1 {
		return Booking{}, &ValidationError{Field: "number of guests", Message: "must be at least 1"}
	}

	status := BookingStatusPending
	if info != nil {
		status = BookingStatusPendingPayment
	}

	return Booking{
		ID:             uuid.New(),
		PackageID:      packageID,
		UserID:         userID,
		CustomerName:   name,
		CustomerEmail:  email,
		CustomerPhone:  phone,
		NumberOfRooms:  rooms,
		NumberOfGuests: guests,
		TotalCents:     priceCents * int64(guests),
		Status:         status,
		PaymentStatus:  PaymentStatusPending,
		PersonalInfo:   info,
		CreatedAt:      time.Now(),
	}, nil
}

// AdminSettable reports whether the admin console may force a booking into
// the given status. The override is unrestricted with respect to the current
// state; pending_payment is only ever set at creation.
func AdminSettable(s BookingStatus) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

type BookingStats struct {
	TotalBookings         int64
	PendingRequests       int64
	ConfirmedRevenueCents int64
}
