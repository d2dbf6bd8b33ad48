// internal/adapters/db/database.go
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// Config holds database configuration
type Config struct {
	Driver             string
	Path               string
	Host               string
	Port               string
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxConnLifetime    time.Duration
	MaxConnIdleTime    time.Duration
	ConnectTimeout     time.Duration
	BusyTimeout        time.Duration
	EnableQueryLogging bool
}

// DefaultConfig returns default database configuration: a local SQLite file
// named warehouse.db in the working directory
func DefaultConfig() *Config {
	return &Config{
		Driver:          DriverSQLite,
		Path:            "warehouse.db",
		Host:            "localhost",
		Port:            "5432",
		User:            "warehouse",
		Database:        "warehouse",
		SSLMode:         "disable",
		MaxConnections:  5,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: time.Minute * 30,
		ConnectTimeout:  time.Second * 10,
		BusyTimeout:     time.Second * 5,
	}
}

// Database wraps sqlx with transaction and query-builder support
type Database struct {
	db        *sqlx.DB
	config    *Config
	logger    *slog.Logger
	builder   sq.StatementBuilderType
	connName  string
	closeHook func()
}

// NewDatabase opens the configured database and verifies the connection
func NewDatabase(ctx context.Context, config *Config, logger *slog.Logger) (*Database, error) {
	if config == nil {
		config = DefaultConfig()
	}

	var (
		sqlxDB   *sqlx.DB
		connName string
		err      error
	)

	switch config.Driver {
	case DriverSQLite, "":
		sqlxDB, err = sqlx.Open(DriverSQLite, sqliteDSN(config))
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		// A single writer avoids SQLITE_BUSY between pooled connections.
		sqlxDB.SetMaxOpenConns(1)
	case DriverPostgres, "postgres":
		connConfig, err := buildConnConfig(config, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to build connection config: %w", err)
		}
		connName = stdlib.RegisterConnConfig(connConfig)
		sqlxDB, err = sqlx.Open(DriverPostgres, connName)
		if err != nil {
			stdlib.UnregisterConnConfig(connName)
			return nil, fmt.Errorf("failed to open postgres database: %w", err)
		}
		sqlxDB.SetMaxOpenConns(config.MaxConnections)
		sqlxDB.SetConnMaxLifetime(config.MaxConnLifetime)
		sqlxDB.SetConnMaxIdleTime(config.MaxConnIdleTime)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
	}

	db := newDatabase(sqlxDB, config, logger)
	if connName != "" {
		db.closeHook = func() { stdlib.UnregisterConnConfig(connName) }
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established",
		slog.String("driver", config.Driver),
		slog.String("target", db.target()),
	)

	return db, nil
}

// NewFromDB wraps an already opened handle. driver selects the placeholder
// format and should be DriverSQLite or DriverPostgres.
func NewFromDB(sqlxDB *sqlx.DB, driver string, logger *slog.Logger) *Database {
	cfg := DefaultConfig()
	cfg.Driver = driver
	return newDatabase(sqlxDB, cfg, logger)
}

func newDatabase(sqlxDB *sqlx.DB, config *Config, logger *slog.Logger) *Database {
	var placeholder sq.PlaceholderFormat = sq.Question
	if config.Driver == DriverPostgres || config.Driver == "postgres" {
		placeholder = sq.Dollar
	}

	return &Database{
		db:      sqlxDB,
		config:  config,
		logger:  logger,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

func sqliteDSN(config *Config) string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)",
		config.Path, config.BusyTimeout.Milliseconds())
}

// buildConnConfig creates the pgx connection configuration
func buildConnConfig(config *Config, logger *slog.Logger) (*pgx.ConnConfig, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d",
		config.Host, config.Port, config.User, config.Password,
		config.Database, config.SSLMode, int(config.ConnectTimeout.Seconds()),
	)

	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	connConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
	connConfig.StatementCacheCapacity = 64

	if config.EnableQueryLogging {
		connConfig.Tracer = &tracelog.TraceLog{
			Logger:   newPgxLogger(logger),
			LogLevel: tracelog.LogLevelDebug,
		}
	}

	return connConfig, nil
}

func (db *Database) target() string {
	if db.config.Driver == DriverPostgres || db.config.Driver == "postgres" {
		return db.config.Host + "/" + db.config.Database
	}
	return db.config.Path
}

// DB returns the underlying sqlx handle
func (db *Database) DB() *sqlx.DB {
	return db.db
}

// Builder returns a statement builder using the driver's placeholder format
func (db *Database) Builder() sq.StatementBuilderType {
	return db.builder
}

// Close closes all database connections
func (db *Database) Close() {
	if err := db.db.Close(); err != nil {
		db.logger.Warn("failed to close database", slog.String("error", err.Error()))
	}
	if db.closeHook != nil {
		db.closeHook()
	}
	db.logger.Debug("database connections closed")
}

// Ping verifies database connectivity
func (db *Database) Ping(ctx context.Context) error {
	return db.db.PingContext(ctx)
}

// Health returns database health information
func (db *Database) Health(ctx context.Context) map[string]interface{} {
	stats := db.db.Stats()
	health := map[string]interface{}{
		"status":           "healthy",
		"driver":           db.config.Driver,
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
		"idle":             stats.Idle,
		"max_open":         stats.MaxOpenConnections,
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*2)
	defer cancel()

	var result int
	if err := db.db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		health["status"] = "unhealthy"
		health["error"] = err.Error()
	}

	return health
}

// Transaction executes a function within a database transaction
func (db *Database) Transaction(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := db.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx failed: %v, rollback failed: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// pgxLogger adapts slog for pgx logging
type pgxLogger struct {
	logger *slog.Logger
}

func newPgxLogger(logger *slog.Logger) *pgxLogger {
	return &pgxLogger{
		logger: logger.With(slog.String("component", "pgx")),
	}
}

func (l *pgxLogger) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]interface{}) {
	attrs := make([]slog.Attr, 0, len(data))
	for k, v := range data {
		attrs = append(attrs, slog.Any(k, v))
	}

	switch level {
	case tracelog.LogLevelError:
		l.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	case tracelog.LogLevelWarn:
		l.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
	case tracelog.LogLevelInfo:
		l.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
	default:
		l.logger.LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
	}
}
