package rabbit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/alhaqtravel/umrah-booking/internal/domain"
)

// BookingEvent is what flows through the events exchange for every booking
// lifecycle change.
type BookingEvent struct {
	Type          string               `json:"type"`
	BookingID     uuid.UUID            `json:"booking_id"`
	UserID        uuid.UUID            `json:"user_id"`
	CustomerEmail string               `json:"customer_email"`
	Status        domain.BookingStatus `json:"status"`
	TotalCents    int64                `json:"total_cents"`
	OccurredAt    time.Time            `json:"occurred_at"`
}

// EventPublisher adapts the raw Publisher to the booking service's producer
// seam: it marshals the event and stamps a message id.
type EventPublisher struct {
	pub *Publisher
}

func NewEventPublisher(pub *Publisher) *EventPublisher {
	return &EventPublisher{pub: pub}
}

func (e *EventPublisher) PublishBookingEvent(ctx context.Context, eventType string, b domain.Booking) error {
	payload, err := json.Marshal(BookingEvent{
		Type:          eventType,
		BookingID:     b.ID,
		UserID:        b.UserID,
		CustomerEmail: b.CustomerEmail,
		Status:        b.Status,
		TotalCents:    b.TotalCents,
		OccurredAt:    time.Now(),
	})
	if err != nil {
		return err
	}
	return e.pub.Publish(ctx, eventType, amqp.Publishing{
		MessageId:   uuid.New().String(),
		ContentType: "application/json",
		Body:        payload,
	})
}
