package service

import (
	"context"

	"github.com/deppfellow/dashboard-data/internal/model"
)

type CustomerService struct {
	store CustomerStore
}

func NewCustomerService(store CustomerStore) *CustomerService {
	return &CustomerService{store: store}
}

func (s *CustomerService) All(ctx context.Context) ([]model.CustomerField, error) {
	return s.store.FetchCustomers(ctx)
}

func (s *CustomerService) Table(ctx context.Context, query string) ([]model.CustomersTable, error) {
	return s.store.FetchFilteredCustomers(ctx, query)
}
