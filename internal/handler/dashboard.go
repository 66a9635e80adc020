package handler

import (
	"github.com/deppfellow/dashboard-data/internal/model"
	"github.com/deppfellow/dashboard-data/internal/server"
	"github.com/deppfellow/dashboard-data/internal/service"
	"github.com/labstack/echo/v4"
)

type DashboardHandler struct {
	Handler
	dashboard *service.DashboardService
}

func NewDashboardHandler(s *server.Server, dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		Handler:   NewHandler(s),
		dashboard: dashboard,
	}
}

func (h *DashboardHandler) GetRevenue(c echo.Context, _ *EmptyRequest) ([]model.Revenue, error) {
	return h.dashboard.Revenue(c.Request().Context())
}

func (h *DashboardHandler) GetLatestInvoices(c echo.Context, _ *EmptyRequest) ([]model.LatestInvoice, error) {
	return h.dashboard.LatestInvoices(c.Request().Context())
}

func (h *DashboardHandler) GetCards(c echo.Context, _ *EmptyRequest) (model.CardData, error) {
	return h.dashboard.Cards(c.Request().Context())
}
