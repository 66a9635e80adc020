package repository

import (
	"database/sql"
	"time"

	"github.com/deppfellow/dashboard-data/internal/lib/currency"
	"github.com/deppfellow/dashboard-data/internal/model"
	"github.com/google/uuid"
)

// Raw rows mirror the selected columns one to one. Mapping into model
// types happens in the to* functions, which are the only place values are
// converted or validated.

type revenueRow struct {
	Month   string
	Revenue int64
}

func scanRevenue(rows *sql.Rows) (model.Revenue, error) {
	var r revenueRow
	if err := rows.Scan(&r.Month, &r.Revenue); err != nil {
		return model.Revenue{}, err
	}
	return toRevenue(r), nil
}

func toRevenue(r revenueRow) model.Revenue {
	return model.Revenue{Month: r.Month, Revenue: r.Revenue}
}

type latestInvoiceRow struct {
	ID       uuid.UUID
	Amount   int64
	Name     string
	Email    string
	ImageURL string
}

func scanLatestInvoice(rows *sql.Rows) (model.LatestInvoice, error) {
	var r latestInvoiceRow
	if err := rows.Scan(&r.ID, &r.Amount, &r.Name, &r.Email, &r.ImageURL); err != nil {
		return model.LatestInvoice{}, err
	}
	return toLatestInvoice(r), nil
}

func toLatestInvoice(r latestInvoiceRow) model.LatestInvoice {
	return model.LatestInvoice{
		ID:       r.ID,
		Name:     r.Name,
		Email:    r.Email,
		ImageURL: r.ImageURL,
		Amount:   currency.Format(r.Amount),
	}
}

type invoicesTableRow struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Amount     int64
	Date       time.Time
	Status     string
	Name       string
	Email      string
	ImageURL   string
}

func scanInvoicesTable(rows *sql.Rows) (model.InvoicesTable, error) {
	var r invoicesTableRow
	if err := rows.Scan(&r.ID, &r.CustomerID, &r.Amount, &r.Date, &r.Status, &r.Name, &r.Email, &r.ImageURL); err != nil {
		return model.InvoicesTable{}, err
	}
	return toInvoicesTable(r)
}

func toInvoicesTable(r invoicesTableRow) (model.InvoicesTable, error) {
	status, err := model.ParseInvoiceStatus(r.Status)
	if err != nil {
		return model.InvoicesTable{}, err
	}

	return model.InvoicesTable{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		Name:       r.Name,
		Email:      r.Email,
		ImageURL:   r.ImageURL,
		Date:       model.Date{Time: r.Date},
		Amount:     r.Amount,
		Status:     status,
	}, nil
}

type invoiceFormRow struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Amount     int64
	Status     string
}

func scanInvoiceForm(rows *sql.Rows) (model.InvoiceForm, error) {
	var r invoiceFormRow
	if err := rows.Scan(&r.ID, &r.CustomerID, &r.Amount, &r.Status); err != nil {
		return model.InvoiceForm{}, err
	}
	return toInvoiceForm(r)
}

func toInvoiceForm(r invoiceFormRow) (model.InvoiceForm, error) {
	status, err := model.ParseInvoiceStatus(r.Status)
	if err != nil {
		return model.InvoiceForm{}, err
	}

	return model.InvoiceForm{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		Amount:     currency.MajorFloat(r.Amount),
		Status:     status,
	}, nil
}

type customerFieldRow struct {
	ID   uuid.UUID
	Name string
}

func scanCustomerField(rows *sql.Rows) (model.CustomerField, error) {
	var r customerFieldRow
	if err := rows.Scan(&r.ID, &r.Name); err != nil {
		return model.CustomerField{}, err
	}
	return model.CustomerField{ID: r.ID, Name: r.Name}, nil
}

type customersTableRow struct {
	ID            uuid.UUID
	Name          string
	Email         string
	ImageURL      string
	TotalInvoices int64
	TotalPending  sql.NullInt64
	TotalPaid     sql.NullInt64
}

func scanCustomersTable(rows *sql.Rows) (model.CustomersTable, error) {
	var r customersTableRow
	if err := rows.Scan(&r.ID, &r.Name, &r.Email, &r.ImageURL, &r.TotalInvoices, &r.TotalPending, &r.TotalPaid); err != nil {
		return model.CustomersTable{}, err
	}
	return toCustomersTable(r), nil
}

func toCustomersTable(r customersTableRow) model.CustomersTable {
	return model.CustomersTable{
		ID:            r.ID,
		Name:          r.Name,
		Email:         r.Email,
		ImageURL:      r.ImageURL,
		TotalInvoices: r.TotalInvoices,
		TotalPending:  currency.Format(r.TotalPending.Int64),
		TotalPaid:     currency.Format(r.TotalPaid.Int64),
	}
}

// cardTotalsRow holds the paid/pending sums; both are NULL on an empty
// invoices table.
type cardTotalsRow struct {
	Paid    sql.NullInt64
	Pending sql.NullInt64
}

func toCardData(invoiceCount, customerCount int64, totals cardTotalsRow) model.CardData {
	return model.CardData{
		NumberOfInvoices:     invoiceCount,
		NumberOfCustomers:    customerCount,
		TotalPaidInvoices:    currency.Format(totals.Paid.Int64),
		TotalPendingInvoices: currency.Format(totals.Pending.Int64),
	}
}

type userRow struct {
	ID       uuid.UUID
	Name     string
	Email    string
	Password string
}

func scanUser(rows *sql.Rows) (model.User, error) {
	var r userRow
	if err := rows.Scan(&r.ID, &r.Name, &r.Email, &r.Password); err != nil {
		return model.User{}, err
	}
	return model.User{ID: r.ID, Name: r.Name, Email: r.Email, Password: r.Password}, nil
}
