package main

import (
	"context"
	"encoding/json"
	"log"
	"os/signal"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/alhaqtravel/umrah-booking/internal/adapters/rabbit"
	"github.com/alhaqtravel/umrah-booking/internal/config"
	"github.com/alhaqtravel/umrah-booking/internal/email"
	"github.com/alhaqtravel/umrah-booking/internal/observability"
)

const queue = "notifications.q"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := observability.NewLogger()

	rabbitConn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to rabbitmq: %v", err)
	}
	defer rabbitConn.Close()

	consumer, err := rabbit.NewConsumer(rabbitConn, queue)
	if err != nil {
		log.Fatalf("failed to create consumer: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deliveries, err := consumer.Consume(ctx)
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}

	sender := email.NewSender(logger)
	logger.Info("notifier started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("notifier stopped")
			return
		case d, ok := <-deliveries:
			if !ok {
				logger.Error("delivery channel closed")
				return
			}
			handle(ctx, sender, logger, d)
		}
	}
}

func handle(ctx context.Context, sender *email.Sender, logger observability.Logger, d amqp.Delivery) {
	var event rabbit.BookingEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		logger.Error("failed to decode event, dropping: ", err)
		d.Nack(false, false)
		return
	}
	if err := sender.Send(ctx, event); err != nil {
		logger.Error("failed to send notification: ", err)
		d.Nack(false, true)
		return
	}
	d.Ack(false)
}
