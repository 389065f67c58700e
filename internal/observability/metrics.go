package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "umrah_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "code", "method"},
	)

	DBTxDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "umrah_db_tx_seconds",
			Help:    "Duration of booking store transactions",
			Buckets: prometheus.DefBuckets,
		},
	)

	OutboxLag = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "umrah_outbox_lag_seconds",
			Help: "Age of the oldest unpublished outbox record",
		},
	)

	PaymentAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "umrah_payment_attempts_total",
			Help: "Payment confirmation attempts by outcome",
		},
		[]string{"outcome"},
	)

	StalePendingPayments = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "umrah_stale_pending_payments",
			Help: "Bookings stuck in pending_payment past the stale threshold",
		},
	)

	RabbitPublishRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "umrah_rabbit_publish_retries_total",
			Help: "Total rabbit publish retries",
		},
	)

	RateLimitExceeded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "umrah_rate_limit_exceeded_total",
			Help: "Total rate limit exceeded",
		},
	)
)
