// Package repository holds the query functions of the dashboard.
//
// Every method follows the same request-scoped flow: borrow one pooled
// connection, run one parameterised statement (built with ent's SQL
// builder), map the raw rows into model types, give the connection back.
// Failures are logged here with the operation name and returned as
// *errs.FetchError carrying only a user-safe message.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/deppfellow/dashboard-data/internal/errs"
	"github.com/deppfellow/dashboard-data/internal/sqlerr"
	"github.com/rs/zerolog"
)

// ItemsPerPage is the page size of the invoices table.
const ItemsPerPage = 6

// Connector hands out exclusive connections from a pool.
// *database.Database and *sql.DB both satisfy it.
type Connector interface {
	Conn(ctx context.Context) (*sql.Conn, error)
}

type base struct {
	db                 Connector
	logger             *zerolog.Logger
	slowQueryThreshold time.Duration
}

// log prefers the request-scoped logger carried by ctx.
func (b *base) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return b.logger
}

// withConn runs fn on a borrowed connection. The connection is closed
// exactly once on every path, before withConn returns.
func (b *base) withConn(ctx context.Context, op, message string, fn func(conn *sql.Conn) error) error {
	start := time.Now()

	conn, err := b.db.Conn(ctx)
	if err != nil {
		b.log(ctx).Error().
			Err(err).
			Str("operation", op).
			Str("sql_error", string(sqlerr.Classify(err))).
			Msg("failed to acquire database connection")
		return errs.NewFetchConnectionError(op, message)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			b.log(ctx).Warn().Err(cerr).Str("operation", op).Msg("failed to release database connection")
		}
	}()

	if err := fn(conn); err != nil {
		b.log(ctx).Error().
			Err(err).
			Str("operation", op).
			Str("sql_error", string(sqlerr.Classify(err))).
			Dur("duration", time.Since(start)).
			Msg("database error")
		return errs.NewFetchError(op, message)
	}

	if elapsed := time.Since(start); b.slowQueryThreshold > 0 && elapsed > b.slowQueryThreshold {
		b.log(ctx).Warn().
			Str("operation", op).
			Dur("duration", elapsed).
			Dur("threshold", b.slowQueryThreshold).
			Msg("slow query")
	}

	return nil
}

// queryRows runs a statement and maps every row with scan.
func queryRows[T any](ctx context.Context, conn *sql.Conn, query string, args []any, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// queryOne is queryRows for lookups by key: it returns the first row, or
// nil when there is none.
func queryOne[T any](ctx context.Context, conn *sql.Conn, query string, args []any, scan func(*sql.Rows) (T, error)) (*T, error) {
	items, err := queryRows(ctx, conn, query, args, scan)
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return &items[0], nil
}
