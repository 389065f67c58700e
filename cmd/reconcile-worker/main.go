package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/alhaqtravel/umrah-booking/internal/adapters/pg"
	"github.com/alhaqtravel/umrah-booking/internal/adapters/rabbit"
	"github.com/alhaqtravel/umrah-booking/internal/config"
	"github.com/alhaqtravel/umrah-booking/internal/domain"
	"github.com/alhaqtravel/umrah-booking/internal/observability"
)

const (
	scanInterval   = time.Minute
	publishRetries = 3
)

// The reconcile worker only reports: it surfaces bookings stuck in
// pending_payment so an operator can check the payment processor side.
// It never changes booking state itself.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := observability.NewLogger()

	pool, err := pgxpool.New(context.Background(), cfg.PGDSN)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	repo := pg.NewRepository(pool)

	rabbitConn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to rabbitmq: %v", err)
	}
	defer rabbitConn.Close()
	rabbitPub, err := rabbit.NewPublisher(rabbitConn)
	if err != nil {
		log.Fatalf("failed to create publisher: %v", err)
	}
	producer := rabbit.NewEventPublisher(rabbitPub)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("reconcile worker started")
	ticker := time.NewTicker(scanInterval)
	defer ticker.Stop()

	for {
		scan(ctx, cfg, repo, producer, logger)
		select {
		case <-ctx.Done():
			logger.Info("reconcile worker stopped")
			return
		case <-ticker.C:
		}
	}
}

type stalePublisher interface {
	PublishBookingEvent(ctx context.Context, eventType string, b domain.Booking) error
}

type staleLister interface {
	ListStalePendingPayments(ctx context.Context, before time.Time) ([]domain.Booking, error)
}

func scan(ctx context.Context, cfg *config.Config, repo staleLister, producer stalePublisher, logger observability.Logger) {
	before := time.Now().Add(-cfg.PaymentStaleAfter)
	stale, err := repo.ListStalePendingPayments(ctx, before)
	if err != nil {
		logger.Error("failed to list stale pending payments: ", err)
		return
	}

	observability.StalePendingPayments.Set(float64(len(stale)))
	if len(stale) == 0 {
		return
	}
	logger.Warn(fmt.Sprintf("found %d bookings stuck in pending_payment since before %s", len(stale), before.Format(time.RFC3339)))

	for _, b := range stale {
		if err := publishStale(ctx, producer, b); err != nil {
			logger.Error("failed to publish payment_stale event: ", err)
		}
	}
}

// publishStale retries with a growing backoff; a shutdown signal cuts the
// wait short.
func publishStale(ctx context.Context, producer stalePublisher, b domain.Booking) error {
	var err error
	for attempt := 0; attempt < publishRetries; attempt++ {
		if err = producer.PublishBookingEvent(ctx, "booking.payment_stale", b); err == nil {
			return nil
		}
		observability.RabbitPublishRetries.Inc()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt+1) * time.Second):
		}
	}
	return err
}
