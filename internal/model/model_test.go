package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInvoiceStatus(t *testing.T) {
	s, err := ParseInvoiceStatus("paid")
	require.NoError(t, err)
	assert.Equal(t, InvoiceStatusPaid, s)

	s, err = ParseInvoiceStatus("pending")
	require.NoError(t, err)
	assert.Equal(t, InvoiceStatusPending, s)

	_, err = ParseInvoiceStatus("PAID")
	assert.Error(t, err)

	_, err = ParseInvoiceStatus("")
	assert.Error(t, err)
}

func TestDate_MarshalJSON(t *testing.T) {
	d := Date{time.Date(2022, time.December, 6, 0, 0, 0, 0, time.UTC)}

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2022-12-06"`, string(b))
}

func TestUser_PasswordNotSerialised(t *testing.T) {
	u := User{
		ID:       uuid.MustParse("410544b2-4001-4271-9855-fec4b6a6442a"),
		Name:     "User",
		Email:    "user@nextmail.com",
		Password: "$2a$10$hash",
	}

	b, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "password")
	assert.NotContains(t, string(b), "$2a$10$hash")
}
