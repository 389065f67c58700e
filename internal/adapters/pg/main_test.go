package pg_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/alhaqtravel/umrah-booking/internal/adapters/pg"
)

var testPool *pgxpool.Pool

// TestMain starts one postgres container for the whole package, applies the
// migrations, and hands every test the same pool.
func TestMain(m *testing.M) {
	if os.Getenv("SKIP_CONTAINER_TESTS") != "" {
		os.Exit(0)
	}

	ctx := context.Background()

	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "umrah",
				"POSTGRES_PASSWORD": "umrah",
				"POSTGRES_DB":       "umrah",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		log.Fatalf("start postgres container: %v", err)
	}
	defer pgContainer.Terminate(ctx)

	host, err := pgContainer.Host(ctx)
	if err != nil {
		log.Fatalf("container host: %v", err)
	}
	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		log.Fatalf("container port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://umrah:umrah@%s:%s/umrah?sslmode=disable", host, port.Port())

	if err := pg.Migrate(ctx, dsn); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	testPool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect pool: %v", err)
	}
	defer testPool.Close()

	os.Exit(m.Run())
}
