// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, applies the
// dashboard's rules (page normalisation, credential checks)
// and calls the query functions of the repository layer
package service

import (
	"github.com/deppfellow/dashboard-data/internal/lib/ratelimit"
	"github.com/deppfellow/dashboard-data/internal/repository"
	"github.com/deppfellow/dashboard-data/internal/server"
)

type Services struct {
	Dashboard *DashboardService
	Invoice   *InvoiceService
	Customer  *CustomerService
	Auth      *AuthService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var limiter *ratelimit.Limiter
	if s.Redis != nil {
		limiter = ratelimit.New(s.Redis, s.Config.Auth.MaxFailedAttempts, s.Config.Auth.FailureWindow)
	} else {
		limiter = ratelimit.New(nil, 0, 0)
	}

	return &Services{
		Dashboard: NewDashboardService(repos.Dashboard),
		Invoice:   NewInvoiceService(repos.Invoice),
		Customer:  NewCustomerService(repos.Customer),
		Auth:      NewAuthService(repos.User, limiter, s.Logger),
	}, nil
}
