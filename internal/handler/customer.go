package handler

import (
	"github.com/deppfellow/dashboard-data/internal/model"
	"github.com/deppfellow/dashboard-data/internal/server"
	"github.com/deppfellow/dashboard-data/internal/service"
	"github.com/labstack/echo/v4"
)

type CustomerHandler struct {
	Handler
	customers *service.CustomerService
}

func NewCustomerHandler(s *server.Server, customers *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		Handler:   NewHandler(s),
		customers: customers,
	}
}

func (h *CustomerHandler) ListCustomers(c echo.Context, _ *EmptyRequest) ([]model.CustomerField, error) {
	return h.customers.All(c.Request().Context())
}

func (h *CustomerHandler) GetCustomersTable(c echo.Context, req *SearchRequest) ([]model.CustomersTable, error) {
	return h.customers.Table(c.Request().Context(), req.Query)
}
