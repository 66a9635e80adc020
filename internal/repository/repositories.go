package repository

import (
	"github.com/deppfellow/dashboard-data/internal/server"
)

// Repositories is the container of every repository, built once from the
// server's connection provider and handed to the service layer.
type Repositories struct {
	Dashboard *DashboardRepository
	Invoice   *InvoiceRepository
	Customer  *CustomerRepository
	User      *UserRepository
}

func NewRepositories(s *server.Server) *Repositories {
	slow := s.Config.Observability.Logging.SlowQueryThreshold

	return &Repositories{
		Dashboard: NewDashboardRepository(s.DB, s.Logger, slow),
		Invoice:   NewInvoiceRepository(s.DB, s.Logger, slow),
		Customer:  NewCustomerRepository(s.DB, s.Logger, slow),
		User:      NewUserRepository(s.DB, s.Logger, slow),
	}
}
