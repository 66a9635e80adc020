package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchError_QueryFailureHidesCause(t *testing.T) {
	err := NewFetchError("FetchRevenue", "Failed to fetch revenue data.")

	assert.Equal(t, "Failed to fetch revenue data.", err.Error())
	assert.Nil(t, errors.Unwrap(err))
	assert.False(t, err.IsConnection())

	var connErr *ConnectionError
	assert.False(t, errors.As(err, &connErr))
}

func TestFetchError_ConnectionFailure(t *testing.T) {
	var err error = NewFetchConnectionError("FetchCustomers", "Failed to fetch all customers.")

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.True(t, fetchErr.IsConnection())
	assert.Equal(t, "FetchCustomers", fetchErr.Op)

	var connErr *ConnectionError
	require.True(t, errors.As(err, &connErr))
	assert.Equal(t, "FetchCustomers: database connection unavailable", connErr.Error())
}

func TestFetchError_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("loading dashboard: %w", NewFetchError("FetchCardData", "Failed to fetch card data."))

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "Failed to fetch card data.", fetchErr.Message)
}

func TestHTTPError_WithMessage(t *testing.T) {
	base := NewNotFoundError("Invoice not found", false, nil)
	changed := base.WithMessage("Customer not found")

	assert.Equal(t, "Invoice not found", base.Message)
	assert.Equal(t, "Customer not found", changed.Message)
	assert.Equal(t, "NOT_FOUND", changed.Code)
	assert.True(t, errors.Is(changed, &HTTPError{}))
}

func TestNewServiceUnavailableError(t *testing.T) {
	err := NewServiceUnavailableError("Database unavailable")
	assert.Equal(t, 503, err.Status)
	assert.Equal(t, "SERVICE_UNAVAILABLE", err.Code)
}
