package router

import (
	"net/http"

	"github.com/deppfellow/dashboard-data/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerDashboardRoutes(g *echo.Group, h *handler.Handlers) {
	g.GET("/revenue", handler.Handle(h.Dashboard.Handler, h.Dashboard.GetRevenue, http.StatusOK, &handler.EmptyRequest{}))
	g.GET("/cards", handler.Handle(h.Dashboard.Handler, h.Dashboard.GetCards, http.StatusOK, &handler.EmptyRequest{}))

	invoices := g.Group("/invoices")
	invoices.GET("", handler.Handle(h.Invoice.Handler, h.Invoice.ListInvoices, http.StatusOK, &handler.InvoiceListRequest{}))
	invoices.GET("/latest", handler.Handle(h.Dashboard.Handler, h.Dashboard.GetLatestInvoices, http.StatusOK, &handler.EmptyRequest{}))
	invoices.GET("/pages", handler.Handle(h.Invoice.Handler, h.Invoice.GetInvoicePages, http.StatusOK, &handler.SearchRequest{}))
	invoices.GET("/:id", handler.Handle(h.Invoice.Handler, h.Invoice.GetInvoice, http.StatusOK, &handler.InvoiceIDRequest{}))

	customers := g.Group("/customers")
	customers.GET("", handler.Handle(h.Customer.Handler, h.Customer.ListCustomers, http.StatusOK, &handler.EmptyRequest{}))
	customers.GET("/table", handler.Handle(h.Customer.Handler, h.Customer.GetCustomersTable, http.StatusOK, &handler.SearchRequest{}))

	g.POST("/auth/login", handler.Handle(h.Auth.Handler, h.Auth.Login, http.StatusOK, &handler.LoginRequest{}))
}
