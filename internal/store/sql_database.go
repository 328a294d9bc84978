package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-fin-tracker/internal/config"
	"github.com/MKhiriev/go-fin-tracker/internal/logger"
	"github.com/MKhiriev/go-fin-tracker/migrations"
)

// DB wraps a *sql.DB together with everything repositories need to talk to
// one particular SQL dialect: the driver name, a squirrel statement builder
// with the right placeholder format, the error classifier and the options of
// read-only snapshot transactions.
type DB struct {
	*sql.DB

	driver             string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	snapshotTxOptions  *sql.TxOptions
	connTimeout        time.Duration
	logger             *logger.Logger
}

// NewDB opens a connection for cfg.Driver, pings it and returns a ready *DB.
func NewDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres, "":
		return NewConnectPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Driver returns the database/sql driver name the connection was opened with.
func (db *DB) Driver() string {
	return db.driver
}

// Migrate applies the embedded schema migrations for the connection's driver.
func (db *DB) Migrate(ctx context.Context) error {
	applied, err := migrations.Migrate(ctx, db.DB, db.driver)
	if err != nil {
		return err
	}

	db.logger.Info().Str("func", "DB.Migrate").Int("applied", applied).Msg("migrations applied")
	return nil
}

// Ping checks that the database is reachable within the connection timeout.
func (db *DB) Ping(ctx context.Context) error {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	return db.PingContext(ctx)
}

// withTimeout bounds a single store call by the configured connection
// timeout. A zero timeout leaves ctx untouched.
func (db *DB) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if db.connTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, db.connTimeout)
}

func (db *DB) classify(err error) ErrorClassification {
	if db.errorClassificator == nil {
		return Unclassified
	}
	return db.errorClassificator.Classify(err)
}

func configurePool(conn *sql.DB, cfg config.DB) {
	if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
		conn.SetMaxIdleConns(cfg.MaxOpenConns)
	}
	conn.SetConnMaxIdleTime(5 * time.Minute)
}
