package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alhaqtravel/umrah-booking/internal/adapters/rabbit"
	"github.com/alhaqtravel/umrah-booking/internal/observability"
)

func TestSubjectFor(t *testing.T) {
	assert.NotEmpty(t, subjectFor("booking.created"))
	assert.NotEmpty(t, subjectFor("booking.confirmed"))
	assert.NotEmpty(t, subjectFor("booking.status_changed"))
	assert.NotEmpty(t, subjectFor("booking.something_new"))
	// Internal events never reach the customer.
	assert.Empty(t, subjectFor("booking.payment_stale"))
}

func TestSendSkipsInternalEvents(t *testing.T) {
	s := NewSender(observability.NewLogger())
	err := s.Send(context.Background(), rabbit.BookingEvent{Type: "booking.payment_stale"})
	assert.NoError(t, err)
}
