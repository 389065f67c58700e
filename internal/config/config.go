package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr         string
	PGDSN            string
	MongoURI         string
	RedisAddr        string
	RabbitURL        string
	JWTSecret        string
	PaymentAPIURL    string
	PaymentSecretKey string
	OTLPEndpoint     string

	// PaymentStaleAfter is how long a booking may sit in pending_payment
	// before the reconcile worker reports it for manual review.
	PaymentStaleAfter time.Duration
	PackagesCacheTTL  time.Duration
	IdempotencyTTL    time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		HTTPAddr:          envOr("HTTP_ADDR", ":8080"),
		PGDSN:             os.Getenv("PG_DSN"),
		MongoURI:          os.Getenv("MONGO_URI"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RabbitURL:         os.Getenv("RABBIT_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		PaymentAPIURL:     os.Getenv("PAYMENT_API_URL"),
		PaymentSecretKey:  os.Getenv("PAYMENT_SECRET_KEY"),
		OTLPEndpoint:      os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		PaymentStaleAfter: durationOr("PAYMENT_STALE_AFTER", 30*time.Minute),
		PackagesCacheTTL:  durationOr("PACKAGES_CACHE_TTL", time.Minute),
		IdempotencyTTL:    durationOr("IDEMPOTENCY_TTL", time.Hour),
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	d, _ := time.ParseDuration(os.Getenv(key))
	if d == 0 {
		return fallback
	}
	return d
}
