package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/deppfellow/dashboard-data/internal/model"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type DashboardRepository struct {
	base
}

func NewDashboardRepository(db Connector, logger *zerolog.Logger, slowQueryThreshold time.Duration) *DashboardRepository {
	return &DashboardRepository{base{db: db, logger: logger, slowQueryThreshold: slowQueryThreshold}}
}

// FetchRevenue returns every monthly revenue point as stored.
func (r *DashboardRepository) FetchRevenue(ctx context.Context) ([]model.Revenue, error) {
	var out []model.Revenue

	err := r.withConn(ctx, "FetchRevenue", "Failed to fetch revenue data.", func(conn *sql.Conn) error {
		query, args := revenueStatement()

		var err error
		out, err = queryRows(ctx, conn, query, args, scanRevenue)
		return err
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// FetchLatestInvoices returns the five most recent invoices with their
// customer and a formatted amount.
func (r *DashboardRepository) FetchLatestInvoices(ctx context.Context) ([]model.LatestInvoice, error) {
	var out []model.LatestInvoice

	err := r.withConn(ctx, "FetchLatestInvoices", "Failed to fetch the latest invoices.", func(conn *sql.Conn) error {
		query, args := latestInvoicesStatement()

		var err error
		out, err = queryRows(ctx, conn, query, args, scanLatestInvoice)
		return err
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// FetchCardData runs the invoice count, the customer count and the
// paid/pending totals concurrently, each on its own connection. If any of
// them fails the whole call fails. Totals of an empty table are zero.
func (r *DashboardRepository) FetchCardData(ctx context.Context) (model.CardData, error) {
	const (
		op      = "FetchCardData"
		message = "Failed to fetch card data."
	)

	var (
		invoiceCount  int64
		customerCount int64
		totals        cardTotalsRow
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.withConn(gctx, op, message, func(conn *sql.Conn) error {
			query, args := countInvoicesStatement()
			return conn.QueryRowContext(gctx, query, args...).Scan(&invoiceCount)
		})
	})

	g.Go(func() error {
		return r.withConn(gctx, op, message, func(conn *sql.Conn) error {
			query, args := countCustomersStatement()
			return conn.QueryRowContext(gctx, query, args...).Scan(&customerCount)
		})
	})

	g.Go(func() error {
		return r.withConn(gctx, op, message, func(conn *sql.Conn) error {
			query, args := invoiceTotalsStatement()
			return conn.QueryRowContext(gctx, query, args...).Scan(&totals.Paid, &totals.Pending)
		})
	})

	if err := g.Wait(); err != nil {
		return model.CardData{}, err
	}

	return toCardData(invoiceCount, customerCount, totals), nil
}
