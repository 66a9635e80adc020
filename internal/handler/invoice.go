package handler

import (
	"github.com/deppfellow/dashboard-data/internal/errs"
	"github.com/deppfellow/dashboard-data/internal/model"
	"github.com/deppfellow/dashboard-data/internal/server"
	"github.com/deppfellow/dashboard-data/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type InvoiceHandler struct {
	Handler
	invoices *service.InvoiceService
}

func NewInvoiceHandler(s *server.Server, invoices *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		Handler:  NewHandler(s),
		invoices: invoices,
	}
}

// InvoicePagesResponse is the body of GET /invoices/pages.
type InvoicePagesResponse struct {
	TotalPages int `json:"totalPages"`
}

func (h *InvoiceHandler) ListInvoices(c echo.Context, req *InvoiceListRequest) ([]model.InvoicesTable, error) {
	return h.invoices.List(c.Request().Context(), req.Query, req.Page)
}

func (h *InvoiceHandler) GetInvoicePages(c echo.Context, req *SearchRequest) (InvoicePagesResponse, error) {
	pages, err := h.invoices.Pages(c.Request().Context(), req.Query)
	if err != nil {
		return InvoicePagesResponse{}, err
	}
	return InvoicePagesResponse{TotalPages: pages}, nil
}

func (h *InvoiceHandler) GetInvoice(c echo.Context, req *InvoiceIDRequest) (*model.InvoiceForm, error) {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, errs.NewBadRequestError("Invalid invoice id", false, nil, nil)
	}

	invoice, err := h.invoices.Get(c.Request().Context(), id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, errs.NewNotFoundError("Invoice not found.", true, nil)
	}

	return invoice, nil
}
