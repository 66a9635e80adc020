package handler

import "github.com/deppfellow/dashboard-data/internal/validation"

// EmptyRequest is used by endpoints without parameters.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error { return nil }

// SearchRequest carries the search text of the invoice and customer
// tables. An empty query matches everything.
type SearchRequest struct {
	Query string `query:"query" validate:"max=256"`
}

func (r *SearchRequest) Validate() error {
	return validation.Struct(r)
}

// InvoiceListRequest selects one page of the invoices table. Pages below 1
// are read as the first page.
type InvoiceListRequest struct {
	Query string `query:"query" validate:"max=256"`
	Page  int    `query:"page"`
}

func (r *InvoiceListRequest) Validate() error {
	return validation.Struct(r)
}

type InvoiceIDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *InvoiceIDRequest) Validate() error {
	return validation.Struct(r)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=320"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

func (r *LoginRequest) Validate() error {
	return validation.Struct(r)
}
