// test/helpers/helpers.go
package helpers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/warehouse/internal/adapters/db"
	"github.com/ammerola/warehouse/internal/core/domain"
	"github.com/ammerola/warehouse/internal/pkg/config"
)

// TestDB represents a test database instance
type TestDB struct {
	Database *db.Database
	Resource *dockertest.Resource
	Pool     *dockertest.Pool
	Config   *db.Config
}

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	if testing.Verbose() {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// SetupTestDB creates a PostgreSQL container for integration tests
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "Could not connect to Docker")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=test_warehouse",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "Could not start PostgreSQL container")

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Could not purge resource: %s", err)
		}
	})

	dbConfig := &db.Config{
		Driver:             db.DriverPostgres,
		Host:               "localhost",
		Port:               resource.GetPort("5432/tcp"),
		User:               "test",
		Password:           "test",
		Database:           "test_warehouse",
		SSLMode:            "disable",
		MaxConnections:     5,
		MaxConnLifetime:    time.Hour,
		MaxConnIdleTime:    time.Minute * 30,
		ConnectTimeout:     time.Second * 10,
		EnableQueryLogging: testing.Verbose(),
	}

	var database *db.Database
	err = pool.Retry(func() error {
		var err error
		database, err = db.NewDatabase(context.Background(), dbConfig, TestLogger())
		return err
	})
	require.NoError(t, err, "Could not connect to PostgreSQL")

	t.Cleanup(database.Close)

	return &TestDB{
		Database: database,
		Resource: resource,
		Pool:     pool,
		Config:   dbConfig,
	}
}

// SetupSQLiteDB opens a file-backed SQLite database in a temp dir
func SetupSQLiteDB(t testing.TB) *db.Database {
	t.Helper()

	cfg := db.DefaultConfig()
	cfg.Path = filepath.Join(t.TempDir(), "warehouse.db")

	database, err := db.NewDatabase(context.Background(), cfg, TestLogger())
	require.NoError(t, err, "Could not open SQLite database")

	t.Cleanup(database.Close)

	return database
}

// SetupTestRedis creates a mock Redis instance for testing
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
	})

	return &TestRedis{
		Client: client,
		Server: mr,
	}
}

// SetupMockDB creates a mock database for unit testing
func SetupMockDB(t *testing.T) (sqlmock.Sqlmock, *sqlx.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create mock DB")

	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	t.Cleanup(func() {
		sqlxDB.Close()
	})

	return mock, sqlxDB
}

// LoadTestConfig returns a test configuration
func LoadTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "warehouse-test",
			Environment: "test",
			Version:     "test",
			LogLevel:    "debug",
			LogFormat:   "text",
			LogOutput:   "stderr",
		},
		Database: config.DatabaseConfig{
			Driver:         "sqlite",
			Path:           "warehouse.db",
			Host:           "localhost",
			Port:           "5432",
			Name:           "warehouse",
			SSLMode:        "disable",
			MaxConnections: 2,
			BusyTimeout:    time.Second,
		},
		Store: config.StoreConfig{
			Backend:      config.StoreBackendSQL,
			SnapshotPath: "warehouse.json",
		},
		Redis: config.RedisConfig{
			Host:      "localhost",
			Port:      "6379",
			KeyPrefix: "warehouse-test",
			PoolSize:  2,
		},
		AWS: config.AWSConfig{
			Region: "us-east-1",
		},
		Auth: config.AuthConfig{
			Source:     config.AuthSourceStatic,
			Username:   "admin",
			Password:   "553355",
			SecretKey:  "WAREHOUSE_PASSWORD",
			LoginRate:  time.Millisecond,
			LoginBurst: 10,
		},
	}
}

// CreateTestInventory creates a small inventory, optionally modified by overrides
func CreateTestInventory(overrides ...func(domain.Inventory)) domain.Inventory {
	inv := domain.Inventory{
		"product1": {Quantity: 10, Price: decimal.NewFromFloat(5.0)},
		"bolt":     {Quantity: 250, Price: decimal.RequireFromString("0.15")},
		"crate":    {Quantity: 3, Price: decimal.RequireFromString("42.5")},
	}

	for _, override := range overrides {
		override(inv)
	}

	return inv
}

// CreateTestInventoryOfSize creates an inventory with count distinct products
func CreateTestInventoryOfSize(count int) domain.Inventory {
	inv := domain.NewInventory()
	for i := 0; i < count; i++ {
		inv[fmt.Sprintf("item-%04d", i+1)] = domain.StockRecord{
			Quantity: i + 1,
			Price:    decimal.NewFromFloat(float64(100+i*50) / 10),
		}
	}
	return inv
}

// AssertInventoryEqual compares two inventories record by record
func AssertInventoryEqual(t *testing.T, expected, actual domain.Inventory) {
	t.Helper()

	require.Equal(t, expected.Len(), actual.Len(), "product count")
	for name, want := range expected {
		got, ok := actual.Get(name)
		require.True(t, ok, "product %s missing", name)
		require.Equal(t, want.Quantity, got.Quantity, "quantity of %s", name)
		require.True(t, want.Price.Equal(got.Price),
			"price of %s: want %s, got %s", name, want.Price, got.Price)
	}
}

// CreateTempFile creates a temporary file for testing
func CreateTempFile(t *testing.T, content []byte, extension string) string {
	t.Helper()

	file, err := os.CreateTemp(t.TempDir(), fmt.Sprintf("test-*%s", extension))
	require.NoError(t, err, "Failed to create temp file")

	_, err = file.Write(content)
	require.NoError(t, err, "Failed to write to temp file")

	require.NoError(t, file.Close())

	return file.Name()
}
