// Package database owns the process-wide PostgreSQL connection pool.
//
// The pool is created once at startup from configuration and closed on
// shutdown. Query code never sees the pool directly: it borrows single
// connections through Conn and returns them with (*sql.Conn).Close.
//
// It handles:
//   - building the DSN from config (TLS forced for URL based config)
//   - creating a pgx connection pool (pgxpool) with pool tuning
//   - wiring query tracing/logging (pgx tracelog, optional New Relic nrpgx5)
//   - exposing a database/sql view of the same pool
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/deppfellow/dashboard-data/internal/config"
	loggerConfig "github.com/deppfellow/dashboard-data/internal/logger"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"
)

// Database holds the pgx pool and a database/sql handle backed by it.
//
// SQL does not keep idle connections of its own: every *sql.Conn it hands
// out is a pgxpool connection and goes straight back to Pool on Close.
type Database struct {
	Pool *pgxpool.Pool
	SQL  *sql.DB
	log  *zerolog.Logger
}

// multiTracer fans pgx tracer callbacks out to several tracers, since
// ConnConfig only has a single Tracer slot.
type multiTracer struct {
	tracers []any
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryStart(context.Context, *pgx.Conn, pgx.TraceQueryStartData) context.Context
		}); ok {
			ctx = t.TraceQueryStart(ctx, conn, data)
		}
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryEnd(context.Context, *pgx.Conn, pgx.TraceQueryEndData)
		}); ok {
			t.TraceQueryEnd(ctx, conn, data)
		}
	}
}

// DatabasePingTimeout is the number of seconds to wait for the startup
// ping before considering the database unreachable.
const DatabasePingTimeout = 10

// New creates the connection pool.
//
// Inputs:
//   - cfg: application config (DSN source, pool tuning, environment)
//   - logger: main app logger
//   - loggerService: optional New Relic service (nil if not configured)
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	dsn, err := cfg.Database.DSN()
	if err != nil {
		return nil, err
	}

	pgxPoolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	applyPoolTuning(pgxPoolConfig, cfg.Database)

	if loggerService != nil && loggerService.GetApplication() != nil {
		pgxPoolConfig.ConnConfig.Tracer = nrpgx5.NewTracer()
	}

	// SQL statement logging is only enabled locally; it prints every query.
	if cfg.IsLocal() {
		globalLevel := logger.GetLevel()
		pgxLogger := loggerConfig.NewPgxLogger(globalLevel)

		localTracer := &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: tracelog.LogLevel(loggerConfig.GetPgxTraceLogLevel(globalLevel)),
		}

		if pgxPoolConfig.ConnConfig.Tracer != nil {
			pgxPoolConfig.ConnConfig.Tracer = &multiTracer{
				tracers: []any{pgxPoolConfig.ConnConfig.Tracer, localTracer},
			}
		} else {
			pgxPoolConfig.ConnConfig.Tracer = localTracer
		}
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	database := &Database{
		Pool: pool,
		SQL:  stdlib.OpenDBFromPool(pool),
		log:  logger,
	}

	logger.Info().
		Bool("tls", cfg.Database.UsesTLS()).
		Int32("max_conns", pgxPoolConfig.MaxConns).
		Msg("connected to the database")

	return database, nil
}

func applyPoolTuning(pc *pgxpool.Config, dbCfg config.DatabaseConfig) {
	if dbCfg.MaxOpenConns > 0 {
		pc.MaxConns = int32(dbCfg.MaxOpenConns)
	}
	if dbCfg.MinConns > 0 {
		pc.MinConns = int32(dbCfg.MinConns)
	}
	if dbCfg.ConnMaxLifetime > 0 {
		pc.MaxConnLifetime = dbCfg.ConnMaxLifetime
	}
	if dbCfg.ConnMaxIdleTime > 0 {
		pc.MaxConnIdleTime = dbCfg.ConnMaxIdleTime
	}
}

// Conn borrows one connection from the pool. The caller owns it
// exclusively until it calls Close.
func (db *Database) Conn(ctx context.Context) (*sql.Conn, error) {
	return db.SQL.Conn(ctx)
}

// Ping checks that a pooled connection can reach the server.
func (db *Database) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// Close closes the database/sql handle and then the pool.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")
	err := db.SQL.Close()
	db.Pool.Close()
	return err
}
