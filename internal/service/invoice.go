package service

import (
	"context"

	"github.com/deppfellow/dashboard-data/internal/model"
	"github.com/google/uuid"
)

type InvoiceService struct {
	store InvoiceStore
}

func NewInvoiceService(store InvoiceStore) *InvoiceService {
	return &InvoiceService{store: store}
}

// List returns page of the invoices matching query. Pages below 1 are
// read as page 1.
func (s *InvoiceService) List(ctx context.Context, query string, page int) ([]model.InvoicesTable, error) {
	return s.store.FetchFilteredInvoices(ctx, query, normalizePage(page))
}

// Pages returns the number of pages List has for query.
func (s *InvoiceService) Pages(ctx context.Context, query string) (int, error) {
	return s.store.FetchInvoicesPages(ctx, query)
}

// Get returns the editable form of an invoice, or nil if none has id.
func (s *InvoiceService) Get(ctx context.Context, id uuid.UUID) (*model.InvoiceForm, error) {
	return s.store.FetchInvoiceByID(ctx, id)
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
