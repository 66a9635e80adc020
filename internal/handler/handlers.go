package handler

import (
	"github.com/deppfellow/dashboard-data/internal/server"
	"github.com/deppfellow/dashboard-data/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health    *HealthHandler
	OpenAPI   *OpenAPIHandler
	Dashboard *DashboardHandler
	Invoice   *InvoiceHandler
	Customer  *CustomerHandler
	Auth      *AuthHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(s),
		OpenAPI:   NewOpenAPIHandler(s),
		Dashboard: NewDashboardHandler(s, services.Dashboard),
		Invoice:   NewInvoiceHandler(s, services.Invoice),
		Customer:  NewCustomerHandler(s, services.Customer),
		Auth:      NewAuthHandler(s, services.Auth),
	}
}
