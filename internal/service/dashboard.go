package service

import (
	"context"

	"github.com/deppfellow/dashboard-data/internal/model"
)

type DashboardService struct {
	store DashboardStore
}

func NewDashboardService(store DashboardStore) *DashboardService {
	return &DashboardService{store: store}
}

func (s *DashboardService) Revenue(ctx context.Context) ([]model.Revenue, error) {
	return s.store.FetchRevenue(ctx)
}

func (s *DashboardService) LatestInvoices(ctx context.Context) ([]model.LatestInvoice, error) {
	return s.store.FetchLatestInvoices(ctx)
}

func (s *DashboardService) Cards(ctx context.Context) (model.CardData, error) {
	return s.store.FetchCardData(ctx)
}
