package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	redisclient "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mongoadapter "github.com/alhaqtravel/umrah-booking/internal/adapters/mongo"
	"github.com/alhaqtravel/umrah-booking/internal/adapters/payment"
	"github.com/alhaqtravel/umrah-booking/internal/adapters/pg"
	"github.com/alhaqtravel/umrah-booking/internal/adapters/rabbit"
	redisadapter "github.com/alhaqtravel/umrah-booking/internal/adapters/redis"
	"github.com/alhaqtravel/umrah-booking/internal/auth"
	"github.com/alhaqtravel/umrah-booking/internal/config"
	httphandler "github.com/alhaqtravel/umrah-booking/internal/http"
	"github.com/alhaqtravel/umrah-booking/internal/idempotency"
	"github.com/alhaqtravel/umrah-booking/internal/observability"
	"github.com/alhaqtravel/umrah-booking/internal/rateLimit"
	bookingsvc "github.com/alhaqtravel/umrah-booking/internal/service/booking"
	"github.com/alhaqtravel/umrah-booking/internal/traveler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	shutdown, err := observability.SetupOTel(context.Background(), cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("failed to setup otel: %v", err)
	}
	defer shutdown()

	logger := observability.NewLogger()

	if err := pg.Migrate(context.Background(), cfg.PGDSN); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), cfg.PGDSN)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	bookingRepo := pg.NewRepository(pool)

	mongoClient, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("failed to connect to mongo: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())
	mongoDB := mongoClient.Database("umrah")
	catalog := mongoadapter.NewCatalogRepository(mongoDB, logger)
	audit := mongoadapter.NewAuditLogger(mongoDB, logger)

	redisClient := redisclient.NewClient(&redisclient.Options{Addr: cfg.RedisAddr})
	redisCache := redisadapter.NewCache(redisClient)
	redisIdemp := redisadapter.NewIdempotency(redisClient)
	idemp := idempotency.NewIdempotency(redisIdemp, cfg.IdempotencyTTL)
	rl := rateLimit.NewRateLimiter(redisCache)

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

	bridge := payment.NewClient(cfg.PaymentAPIURL, cfg.PaymentSecretKey, logger)
	verifier := auth.NewVerifier(cfg.JWTSecret)

	svc := bookingsvc.NewService(bookingRepo, catalog, bridge, traveler.NewValidator(), logger,
		bookingsvc.WithProducer(producer),
		bookingsvc.WithAuditor(audit),
	)

	handlers := httphandler.NewHandlers(cfg, svc, catalog, redisCache, audit, idemp, logger)
	r := httphandler.SetupRouter(handlers, logger, rl, verifier)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}
	logger.Info("Server exiting")
}
