package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"product-catalog/internal/config"
	"product-catalog/internal/database"
	"product-catalog/internal/migrate"
	"product-catalog/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a migrated test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB starts a PostgreSQL container, opens a pool and applies the
// embedded migrations.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("products_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	logger := zerolog.Nop()
	pool, err := database.NewPoolFromConnString(ctx, connStr, dbConfig, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := migrate.Apply(ctx, pool, logger); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SetupTestRedis starts a Redis container and returns its address.
func SetupTestRedis(t *testing.T) string {
	t.Helper()

	ctx := context.Background()

	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start redis container: %v", err)
	}

	t.Cleanup(func() {
		if err := redisContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	endpoint, err := redisContainer.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("failed to get redis endpoint: %v", err)
	}

	return endpoint
}

// testProducts are inserted oldest first, so the API lists them in reverse.
var testProducts = []model.Product{
	{Name: "Desk Lamp", Description: "Adjustable LED desk lamp", Price: 29.90, CreatedAt: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)},
	{Name: "Notebook", Description: "A5 dotted notebook", Price: 7.50, CreatedAt: time.Date(2024, 1, 11, 9, 0, 0, 0, time.UTC)},
	{Name: "Office Chair", Description: "Ergonomic mesh chair", Price: 249.00, CreatedAt: time.Date(2024, 1, 12, 9, 0, 0, 0, time.UTC)},
}

// SeedProducts inserts testProducts and returns them with their assigned ids.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) []model.Product {
	t.Helper()

	ctx := context.Background()

	seeded := make([]model.Product, 0, len(testProducts))
	for _, p := range testProducts {
		err := pool.QueryRow(ctx,
			`INSERT INTO products (name, description, price, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $4) RETURNING id`,
			p.Name, p.Description, p.Price, p.CreatedAt,
		).Scan(&p.ID)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.Name, err)
		}
		seeded = append(seeded, p)
	}

	return seeded
}

// CleanupDB removes all products and restarts the id sequence.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"products"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("TRUNCATE %s RESTART IDENTITY", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
