package repository

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/deppfellow/dashboard-data/internal/errs"
	"github.com/deppfellow/dashboard-data/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	invoiceID  = "cc27c14a-0acf-4f4a-a6c9-d45682c144b9"
	customerID = "3958dc9e-712f-4377-85e9-fec4b6a6442a"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db, mock
}

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func bufferLogger(buf *bytes.Buffer) *zerolog.Logger {
	l := zerolog.New(buf)
	return &l
}

func assertReleased(t *testing.T, db *sql.DB) {
	t.Helper()
	assert.Equal(t, 0, db.Stats().InUse, "connection was not released")
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFetchRevenue(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDashboardRepository(db, nopLogger(), 0)

	mock.ExpectQuery(revenueSQL).
		WillReturnRows(sqlmock.NewRows([]string{"month", "revenue"}).
			AddRow("Jan", int64(2000)).
			AddRow("Feb", int64(1800)))

	got, err := repo.FetchRevenue(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []model.Revenue{
		{Month: "Jan", Revenue: 2000},
		{Month: "Feb", Revenue: 1800},
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
	assertReleased(t, db)
}

func TestFetchRevenue_QueryErrorIsHidden(t *testing.T) {
	db, mock := newMockDB(t)
	var logs bytes.Buffer
	repo := NewDashboardRepository(db, bufferLogger(&logs), 0)

	mock.ExpectQuery(revenueSQL).
		WillReturnError(errors.New(`relation "revenue" does not exist`))

	got, err := repo.FetchRevenue(context.Background())
	require.Error(t, err)
	assert.Nil(t, got)

	var fetchErr *errs.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "FetchRevenue", fetchErr.Op)
	assert.Equal(t, "Failed to fetch revenue data.", err.Error())
	assert.False(t, fetchErr.IsConnection())
	assert.Nil(t, errors.Unwrap(err))
	assert.NotContains(t, err.Error(), "does not exist")

	assert.Contains(t, logs.String(), `"operation":"FetchRevenue"`)
	assert.Contains(t, logs.String(), `relation \"revenue\" does not exist`)

	assertReleased(t, db)
}

func TestFetch_ConnectionUnavailable(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCustomerRepository(db, nopLogger(), 0)

	mock.ExpectClose()
	require.NoError(t, db.Close())

	_, err := repo.FetchCustomers(context.Background())
	require.Error(t, err)

	var connErr *errs.ConnectionError
	assert.True(t, errors.As(err, &connErr))
	assert.Equal(t, "Failed to fetch all customers.", err.Error())
}

func TestFetch_CanceledContextNeverQueries(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvoiceRepository(db, nopLogger(), 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.FetchInvoicesPages(ctx, "")
	require.Error(t, err)

	var fetchErr *errs.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.True(t, fetchErr.IsConnection())
	assert.NoError(t, mock.ExpectationsWereMet())
	assertReleased(t, db)
}

func TestFetchLatestInvoices(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDashboardRepository(db, nopLogger(), 0)

	mock.ExpectQuery(latestInvoicesSQL).
		WillReturnRows(sqlmock.NewRows([]string{"id", "amount", "name", "email", "image_url"}).
			AddRow(invoiceID, int64(15795), "Delba de Oliveira", "delba@oliveira.com", "/customers/delba-de-oliveira.png").
			AddRow(uuid.NewString(), int64(123456), "Lee Robinson", "lee@robinson.com", "/customers/lee-robinson.png"))

	got, err := repo.FetchLatestInvoices(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, uuid.MustParse(invoiceID), got[0].ID)
	assert.Equal(t, "$157.95", got[0].Amount)
	assert.Equal(t, "Delba de Oliveira", got[0].Name)
	assert.Equal(t, "$1,234.56", got[1].Amount)
	assertReleased(t, db)
}

func TestFetchCardData(t *testing.T) {
	db, mock := newMockDB(t)
	mock.MatchExpectationsInOrder(false)
	repo := NewDashboardRepository(db, nopLogger(), 0)

	mock.ExpectQuery(countInvoicesSQL).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(15)))
	mock.ExpectQuery(countCustomersSQL).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(6)))
	mock.ExpectQuery(invoiceTotalsSQL).
		WillReturnRows(sqlmock.NewRows([]string{"paid", "pending"}).AddRow(int64(8094506), int64(140953)))

	got, err := repo.FetchCardData(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.CardData{
		NumberOfInvoices:     15,
		NumberOfCustomers:    6,
		TotalPaidInvoices:    "$80,945.06",
		TotalPendingInvoices: "$1,409.53",
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
	assertReleased(t, db)
}

func TestFetchCardData_EmptyInvoices(t *testing.T) {
	db, mock := newMockDB(t)
	mock.MatchExpectationsInOrder(false)
	repo := NewDashboardRepository(db, nopLogger(), 0)

	mock.ExpectQuery(countInvoicesSQL).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(countCustomersSQL).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(invoiceTotalsSQL).
		WillReturnRows(sqlmock.NewRows([]string{"paid", "pending"}).AddRow(nil, nil))

	got, err := repo.FetchCardData(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), got.NumberOfInvoices)
	assert.Equal(t, "$0.00", got.TotalPaidInvoices)
	assert.Equal(t, "$0.00", got.TotalPendingInvoices)
	assertReleased(t, db)
}

func TestFetchCardData_OneFailureFailsAll(t *testing.T) {
	db, mock := newMockDB(t)
	mock.MatchExpectationsInOrder(false)
	repo := NewDashboardRepository(db, nopLogger(), 0)

	mock.ExpectQuery(countInvoicesSQL).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(15)))
	mock.ExpectQuery(countCustomersSQL).
		WillReturnError(errors.New("permission denied for table customers"))
	mock.ExpectQuery(invoiceTotalsSQL).
		WillReturnRows(sqlmock.NewRows([]string{"paid", "pending"}).AddRow(int64(1), int64(2)))

	got, err := repo.FetchCardData(context.Background())
	require.Error(t, err)

	assert.Equal(t, model.CardData{}, got)
	assert.Equal(t, "Failed to fetch card data.", err.Error())
	assert.NotContains(t, err.Error(), "permission denied")
	assertReleased(t, db)
}

var invoiceColumns = []string{"id", "customer_id", "amount", "date", "status", "name", "email", "image_url"}

func TestFetchFilteredInvoices(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvoiceRepository(db, nopLogger(), 0)

	rows := sqlmock.NewRows(invoiceColumns)
	for i := 0; i < ItemsPerPage; i++ {
		rows.AddRow(uuid.NewString(), customerID, int64(1000*(i+1)), day(2023, time.June, 20-i), "pending",
			"Amy Burns", "amy@burns.com", "/customers/amy-burns.png")
	}

	pattern := "%amy%"
	mock.ExpectQuery(filteredInvoicesSQL(6)).
		WithArgs(pattern, pattern, pattern, pattern, pattern).
		WillReturnRows(rows)

	got, err := repo.FetchFilteredInvoices(context.Background(), "Amy", 2)
	require.NoError(t, err)

	assert.Len(t, got, ItemsPerPage)
	assert.Equal(t, day(2023, time.June, 20), got[0].Date.Time)
	assert.Equal(t, model.InvoiceStatusPending, got[0].Status)
	assert.Equal(t, int64(1000), got[0].Amount)
	assert.Equal(t, uuid.MustParse(customerID), got[0].CustomerID)

	assert.NoError(t, mock.ExpectationsWereMet())
	assertReleased(t, db)
}

func TestFetchFilteredInvoices_QuoteIsLiteral(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvoiceRepository(db, nopLogger(), 0)

	pattern := "%o'brien%"
	mock.ExpectQuery(filteredInvoicesSQL(0)).
		WithArgs(pattern, pattern, pattern, pattern, pattern).
		WillReturnRows(sqlmock.NewRows(invoiceColumns).
			AddRow(invoiceID, customerID, int64(500), day(2023, time.May, 1), "paid",
				"Conan O'Brien", "conan@obrien.com", "/customers/conan.png"))

	got, err := repo.FetchFilteredInvoices(context.Background(), "O'Brien", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Conan O'Brien", got[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchFilteredInvoices_PageBelowOne(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvoiceRepository(db, nopLogger(), 0)

	mock.ExpectQuery(filteredInvoicesSQL(0)).
		WillReturnRows(sqlmock.NewRows(invoiceColumns))

	got, err := repo.FetchFilteredInvoices(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchFilteredInvoices_UnknownStatusIsFetchError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvoiceRepository(db, nopLogger(), 0)

	mock.ExpectQuery(filteredInvoicesSQL(0)).
		WillReturnRows(sqlmock.NewRows(invoiceColumns).
			AddRow(invoiceID, customerID, int64(500), day(2023, time.May, 1), "overdue",
				"Amy Burns", "amy@burns.com", "/customers/amy-burns.png"))

	_, err := repo.FetchFilteredInvoices(context.Background(), "", 1)
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch invoices.", err.Error())
	assertReleased(t, db)
}

func TestFetchInvoicesPages_MatchesFilteredRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvoiceRepository(db, nopLogger(), 0)

	const total = 13

	mock.ExpectQuery(invoicesCountSQL).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(total)))

	pages, err := repo.FetchInvoicesPages(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 3, pages)

	remaining := total
	for page := 1; page <= pages; page++ {
		rows := sqlmock.NewRows(invoiceColumns)
		for i := 0; i < min(ItemsPerPage, remaining); i++ {
			rows.AddRow(uuid.NewString(), customerID, int64(100), day(2023, time.January, 28-i), "paid",
				"Amy Burns", "amy@burns.com", "/customers/amy-burns.png")
		}
		remaining -= min(ItemsPerPage, remaining)
		mock.ExpectQuery(filteredInvoicesSQL((page - 1) * ItemsPerPage)).WillReturnRows(rows)
	}

	seen := 0
	for page := 1; page <= pages; page++ {
		got, err := repo.FetchFilteredInvoices(context.Background(), "", page)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(got), ItemsPerPage)
		seen += len(got)
	}

	assert.Equal(t, total, seen)
	assert.Equal(t, pages, totalPages(int64(seen)))
	assert.NoError(t, mock.ExpectationsWereMet())
	assertReleased(t, db)
}

func TestFetchInvoiceByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvoiceRepository(db, nopLogger(), 0)

	id := uuid.MustParse(invoiceID)

	mock.ExpectQuery(invoiceByIDSQL).
		WithArgs(invoiceID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "amount", "status"}).
			AddRow(invoiceID, customerID, int64(100000), "pending"))

	got, err := repo.FetchInvoiceByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, 1000.0, got.Amount)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, model.InvoiceStatusPending, got.Status)
	assertReleased(t, db)
}

func TestFetchInvoiceByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvoiceRepository(db, nopLogger(), 0)

	mock.ExpectQuery(invoiceByIDSQL).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "amount", "status"}))

	got, err := repo.FetchInvoiceByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
	assertReleased(t, db)
}

func TestFetchCustomers(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCustomerRepository(db, nopLogger(), 0)

	mock.ExpectQuery(customersSQL).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(customerID, "Amy Burns").
			AddRow(uuid.NewString(), "Balazs Orban"))

	got, err := repo.FetchCustomers(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Amy Burns", got[0].Name)
	assert.Equal(t, uuid.MustParse(customerID), got[0].ID)
	assertReleased(t, db)
}

func TestFetchFilteredCustomers(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCustomerRepository(db, nopLogger(), 0)

	mock.ExpectQuery(filteredCustomersSQL).
		WithArgs("%amy%", "%amy%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "image_url", "total_invoices", "total_pending", "total_paid"}).
			AddRow(customerID, "Amy Burns", "amy@burns.com", "/customers/amy-burns.png", int64(2), int64(54246), int64(0)).
			AddRow(uuid.NewString(), "Amy Lee", "amy@lee.com", "/customers/amy-lee.png", int64(0), nil, nil))

	got, err := repo.FetchFilteredCustomers(context.Background(), "AMY")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, int64(2), got[0].TotalInvoices)
	assert.Equal(t, "$542.46", got[0].TotalPending)
	assert.Equal(t, "$0.00", got[0].TotalPaid)
	assert.Equal(t, "$0.00", got[1].TotalPending)
	assertReleased(t, db)
}

func TestGetUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, nopLogger(), 0)

	mock.ExpectQuery(userByEmailSQL).
		WithArgs("user@nextmail.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password"}).
			AddRow("410544b2-4001-4271-9855-fec4b6a6442a", "User", "user@nextmail.com", "$2a$10$hash"))

	got, err := repo.GetUser(context.Background(), "user@nextmail.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "User", got.Name)
	assert.Equal(t, "$2a$10$hash", got.Password)
	assertReleased(t, db)
}

func TestGetUser_Missing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, nopLogger(), 0)

	mock.ExpectQuery(userByEmailSQL).
		WithArgs("missing@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password"}))

	got, err := repo.GetUser(context.Background(), "missing@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
	assertReleased(t, db)
}

func TestGetUser_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, nopLogger(), 0)

	mock.ExpectQuery(userByEmailSQL).WillReturnError(sql.ErrConnDone)

	got, err := repo.GetUser(context.Background(), "user@nextmail.com")
	require.Error(t, err)
	assert.Nil(t, got)
	assert.Equal(t, "Failed to fetch user.", err.Error())
	assertReleased(t, db)
}

func TestWithConn_SlowQueryIsLogged(t *testing.T) {
	db, mock := newMockDB(t)
	var logs bytes.Buffer
	repo := NewDashboardRepository(db, bufferLogger(&logs), time.Millisecond)

	mock.ExpectQuery(revenueSQL).
		WillDelayFor(20 * time.Millisecond).
		WillReturnRows(sqlmock.NewRows([]string{"month", "revenue"}))

	_, err := repo.FetchRevenue(context.Background())
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "slow query")
}

func TestWithConn_UsesRequestLogger(t *testing.T) {
	db, mock := newMockDB(t)
	var requestLogs bytes.Buffer
	repo := NewDashboardRepository(db, nopLogger(), 0)

	ctx := zerolog.New(&requestLogs).With().Str("request_id", "req-1").Logger().WithContext(context.Background())

	mock.ExpectQuery(revenueSQL).WillReturnError(errors.New("boom"))

	_, err := repo.FetchRevenue(ctx)
	require.Error(t, err)
	assert.Contains(t, requestLogs.String(), `"request_id":"req-1"`)
}
