package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alhaqtravel/umrah-booking/internal/domain"
)

type fakePublisher struct {
	calls   int
	failFor int
}

func (f *fakePublisher) PublishBookingEvent(ctx context.Context, eventType string, b domain.Booking) error {
	f.calls++
	if f.calls <= f.failFor {
		return assert.AnError
	}
	return nil
}

func TestPublishStaleRetriesThenSucceeds(t *testing.T) {
	pub := &fakePublisher{failFor: 1}
	err := publishStale(context.Background(), pub, domain.Booking{})
	require.NoError(t, err)
	assert.Equal(t, 2, pub.calls)
}

func TestPublishStaleStopsOnShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pub := &fakePublisher{failFor: publishRetries}
	start := time.Now()
	err := publishStale(ctx, pub, domain.Booking{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, pub.calls)
	// The backoff must not be waited out once the context is gone.
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}
