package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/deppfellow/dashboard-data/internal/model"
	"github.com/rs/zerolog"
)

type CustomerRepository struct {
	base
}

func NewCustomerRepository(db Connector, logger *zerolog.Logger, slowQueryThreshold time.Duration) *CustomerRepository {
	return &CustomerRepository{base{db: db, logger: logger, slowQueryThreshold: slowQueryThreshold}}
}

// FetchCustomers returns all customers ordered by name.
func (r *CustomerRepository) FetchCustomers(ctx context.Context) ([]model.CustomerField, error) {
	var out []model.CustomerField

	err := r.withConn(ctx, "FetchCustomers", "Failed to fetch all customers.", func(conn *sql.Conn) error {
		stmt, args := customersStatement()

		var err error
		out, err = queryRows(ctx, conn, stmt, args, scanCustomerField)
		return err
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// FetchFilteredCustomers returns customers whose name or email contains
// query, each with its invoice count and formatted paid/pending totals.
func (r *CustomerRepository) FetchFilteredCustomers(ctx context.Context, query string) ([]model.CustomersTable, error) {
	var out []model.CustomersTable

	err := r.withConn(ctx, "FetchFilteredCustomers", "Failed to fetch customer table.", func(conn *sql.Conn) error {
		stmt, args := filteredCustomersStatement(query)

		var err error
		out, err = queryRows(ctx, conn, stmt, args, scanCustomersTable)
		return err
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
