package repository

import (
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/deppfellow/dashboard-data/internal/model"
	"github.com/google/uuid"
)

var pg = entsql.Dialect(dialect.Postgres)

// Tables are built per statement: the selector sets their dialect while
// rendering, so sharing one across goroutines would race. Both carry an
// explicit alias. A joined table without one is renamed t1, t2, ... by the
// selector, which breaks column references made before the join.
func tables() (invoices, customers *entsql.SelectTable) {
	return pg.Table("invoices").As("invoices"), pg.Table("customers").As("customers")
}

// sumWhereStatus sums invoice amounts with the given status, counting
// other rows as zero.
func sumWhereStatus(invoices *entsql.SelectTable, status model.InvoiceStatus, alias string) string {
	return entsql.As(
		fmt.Sprintf("SUM(CASE WHEN %s = '%s' THEN %s ELSE 0 END)", invoices.C("status"), status, invoices.C("amount")),
		alias,
	)
}

func revenueStatement() (string, []any) {
	revenue := pg.Table("revenue")
	return pg.Select(revenue.C("month"), revenue.C("revenue")).
		From(revenue).
		Query()
}

func latestInvoicesStatement() (string, []any) {
	invoices, customers := tables()
	return pg.Select(
		invoices.C("id"),
		invoices.C("amount"),
		customers.C("name"),
		customers.C("email"),
		customers.C("image_url"),
	).
		From(invoices).
		Join(customers).On(invoices.C("customer_id"), customers.C("id")).
		OrderBy(entsql.Desc(invoices.C("date"))).
		Limit(5).
		Query()
}

func countInvoicesStatement() (string, []any) {
	return pg.Select(entsql.Count("*")).From(pg.Table("invoices")).Query()
}

func countCustomersStatement() (string, []any) {
	return pg.Select(entsql.Count("*")).From(pg.Table("customers")).Query()
}

func invoiceTotalsStatement() (string, []any) {
	invoices := pg.Table("invoices")
	return pg.Select(
		sumWhereStatus(invoices, model.InvoiceStatusPaid, "paid"),
		sumWhereStatus(invoices, model.InvoiceStatusPending, "pending"),
	).
		From(invoices).
		Query()
}

// invoiceSearch matches the search text, case-insensitively and anywhere
// in the value, against the customer's name and email and the invoice's
// amount, date and status. The text is always a bound argument with LIKE
// wildcards escaped.
func invoiceSearch(invoices, customers *entsql.SelectTable, query string) *entsql.Predicate {
	return entsql.Or(
		entsql.ContainsFold(customers.C("name"), query),
		entsql.ContainsFold(customers.C("email"), query),
		entsql.ContainsFold(invoices.C("amount")+"::text", query),
		entsql.ContainsFold(invoices.C("date")+"::text", query),
		entsql.ContainsFold(invoices.C("status"), query),
	)
}

func filteredInvoicesStatement(query string, page int) (string, []any) {
	invoices, customers := tables()
	offset := (page - 1) * ItemsPerPage

	return pg.Select(
		invoices.C("id"),
		invoices.C("customer_id"),
		invoices.C("amount"),
		invoices.C("date"),
		invoices.C("status"),
		customers.C("name"),
		customers.C("email"),
		customers.C("image_url"),
	).
		From(invoices).
		Join(customers).On(invoices.C("customer_id"), customers.C("id")).
		Where(invoiceSearch(invoices, customers, query)).
		OrderBy(entsql.Desc(invoices.C("date"))).
		Limit(ItemsPerPage).
		Offset(offset).
		Query()
}

func invoicesCountStatement(query string) (string, []any) {
	invoices, customers := tables()
	return pg.Select(entsql.Count("*")).
		From(invoices).
		Join(customers).On(invoices.C("customer_id"), customers.C("id")).
		Where(invoiceSearch(invoices, customers, query)).
		Query()
}

func invoiceByIDStatement(id uuid.UUID) (string, []any) {
	invoices := pg.Table("invoices")
	return pg.Select(
		invoices.C("id"),
		invoices.C("customer_id"),
		invoices.C("amount"),
		invoices.C("status"),
	).
		From(invoices).
		Where(entsql.EQ(invoices.C("id"), id)).
		Query()
}

func customersStatement() (string, []any) {
	customers := pg.Table("customers")
	return pg.Select(customers.C("id"), customers.C("name")).
		From(customers).
		OrderBy(entsql.Asc(customers.C("name"))).
		Query()
}

func filteredCustomersStatement(query string) (string, []any) {
	invoices, customers := tables()
	return pg.Select(
		customers.C("id"),
		customers.C("name"),
		customers.C("email"),
		customers.C("image_url"),
		entsql.As(entsql.Count(invoices.C("id")), "total_invoices"),
		sumWhereStatus(invoices, model.InvoiceStatusPending, "total_pending"),
		sumWhereStatus(invoices, model.InvoiceStatusPaid, "total_paid"),
	).
		From(customers).
		LeftJoin(invoices).On(customers.C("id"), invoices.C("customer_id")).
		Where(entsql.Or(
			entsql.ContainsFold(customers.C("name"), query),
			entsql.ContainsFold(customers.C("email"), query),
		)).
		GroupBy(
			customers.C("id"),
			customers.C("name"),
			customers.C("email"),
			customers.C("image_url"),
		).
		OrderBy(entsql.Asc(customers.C("name"))).
		Query()
}

func userByEmailStatement(email string) (string, []any) {
	users := pg.Table("users")
	return pg.Select(
		users.C("id"),
		users.C("name"),
		users.C("email"),
		users.C("password"),
	).
		From(users).
		Where(entsql.EQ(users.C("email"), email)).
		Limit(1).
		Query()
}
