// Package email turns booking events into customer notifications. Delivery
// goes through the logger for now; the hosted mail provider hookup slots in
// behind Sender without touching the notifier.
package email

import (
	"context"
	"fmt"

	"github.com/alhaqtravel/umrah-booking/internal/adapters/rabbit"
	"github.com/alhaqtravel/umrah-booking/internal/observability"
)

type Sender struct {
	logger observability.Logger
}

func NewSender(logger observability.Logger) *Sender {
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, event rabbit.BookingEvent) error {
	subject := subjectFor(event.Type)
	if subject == "" {
		return nil
	}
	s.logger.
		WithField("booking_id", event.BookingID).
		WithField("to", event.CustomerEmail).
		Info("sending notification: ", subject)
	return nil
}

func subjectFor(eventType string) string {
	switch eventType {
	case "booking.created":
		return "We received your Umrah booking request"
	case "booking.confirmed":
		return "Your Umrah booking is confirmed"
	case "booking.status_changed":
		return "Your Umrah booking status was updated"
	case "booking.payment_stale":
		// Internal event, not customer facing.
		return ""
	default:
		return fmt.Sprintf("Update on your booking (%s)", eventType)
	}
}
