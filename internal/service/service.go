package service

import (
	"context"

	"github.com/deppfellow/dashboard-data/internal/model"
	"github.com/google/uuid"
)

// The stores below are the query functions each service depends on. The
// repository types satisfy them; tests substitute fakes.

type DashboardStore interface {
	FetchRevenue(ctx context.Context) ([]model.Revenue, error)
	FetchLatestInvoices(ctx context.Context) ([]model.LatestInvoice, error)
	FetchCardData(ctx context.Context) (model.CardData, error)
}

type InvoiceStore interface {
	FetchFilteredInvoices(ctx context.Context, query string, currentPage int) ([]model.InvoicesTable, error)
	FetchInvoicesPages(ctx context.Context, query string) (int, error)
	FetchInvoiceByID(ctx context.Context, id uuid.UUID) (*model.InvoiceForm, error)
}

type CustomerStore interface {
	FetchCustomers(ctx context.Context) ([]model.CustomerField, error)
	FetchFilteredCustomers(ctx context.Context, query string) ([]model.CustomersTable, error)
}

type UserStore interface {
	GetUser(ctx context.Context, email string) (*model.User, error)
}
