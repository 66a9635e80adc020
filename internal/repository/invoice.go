package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/deppfellow/dashboard-data/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type InvoiceRepository struct {
	base
}

func NewInvoiceRepository(db Connector, logger *zerolog.Logger, slowQueryThreshold time.Duration) *InvoiceRepository {
	return &InvoiceRepository{base{db: db, logger: logger, slowQueryThreshold: slowQueryThreshold}}
}

// FetchFilteredInvoices returns one page (at most ItemsPerPage rows, newest
// first) of invoices matching query. Pages start at 1; smaller values are
// treated as 1.
func (r *InvoiceRepository) FetchFilteredInvoices(ctx context.Context, query string, currentPage int) ([]model.InvoicesTable, error) {
	if currentPage < 1 {
		currentPage = 1
	}

	var out []model.InvoicesTable

	err := r.withConn(ctx, "FetchFilteredInvoices", "Failed to fetch invoices.", func(conn *sql.Conn) error {
		stmt, args := filteredInvoicesStatement(query, currentPage)

		var err error
		out, err = queryRows(ctx, conn, stmt, args, scanInvoicesTable)
		return err
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// FetchInvoicesPages returns how many pages FetchFilteredInvoices has for
// query.
func (r *InvoiceRepository) FetchInvoicesPages(ctx context.Context, query string) (int, error) {
	var count int64

	err := r.withConn(ctx, "FetchInvoicesPages", "Failed to fetch total number of invoices.", func(conn *sql.Conn) error {
		stmt, args := invoicesCountStatement(query)
		return conn.QueryRowContext(ctx, stmt, args...).Scan(&count)
	})
	if err != nil {
		return 0, err
	}

	return totalPages(count), nil
}

func totalPages(count int64) int {
	return int((count + ItemsPerPage - 1) / ItemsPerPage)
}

// FetchInvoiceByID returns the invoice with its amount in major units, or
// nil when no invoice has that id.
func (r *InvoiceRepository) FetchInvoiceByID(ctx context.Context, id uuid.UUID) (*model.InvoiceForm, error) {
	var out *model.InvoiceForm

	err := r.withConn(ctx, "FetchInvoiceByID", "Failed to fetch invoice.", func(conn *sql.Conn) error {
		stmt, args := invoiceByIDStatement(id)

		var err error
		out, err = queryOne(ctx, conn, stmt, args, scanInvoiceForm)
		return err
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
