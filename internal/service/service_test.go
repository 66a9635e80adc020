package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/deppfellow/dashboard-data/internal/errs"
	"github.com/deppfellow/dashboard-data/internal/lib/ratelimit"
	"github.com/deppfellow/dashboard-data/internal/model"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeInvoices struct {
	gotQuery string
	gotPage  int
	rows     []model.InvoicesTable
	pages    int
	form     *model.InvoiceForm
	err      error
}

func (f *fakeInvoices) FetchFilteredInvoices(_ context.Context, query string, page int) ([]model.InvoicesTable, error) {
	f.gotQuery, f.gotPage = query, page
	return f.rows, f.err
}

func (f *fakeInvoices) FetchInvoicesPages(_ context.Context, query string) (int, error) {
	f.gotQuery = query
	return f.pages, f.err
}

func (f *fakeInvoices) FetchInvoiceByID(_ context.Context, _ uuid.UUID) (*model.InvoiceForm, error) {
	return f.form, f.err
}

type fakeUsers struct {
	users map[string]*model.User
	err   error
	calls int
}

func (f *fakeUsers) GetUser(_ context.Context, email string) (*model.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.users[email], nil
}

func TestInvoiceService_PageBelowOneIsFirstPage(t *testing.T) {
	store := &fakeInvoices{rows: []model.InvoicesTable{}}
	svc := NewInvoiceService(store)

	_, err := svc.List(context.Background(), "paid", -3)
	require.NoError(t, err)

	assert.Equal(t, 1, store.gotPage)
	assert.Equal(t, "paid", store.gotQuery)
}

func TestInvoiceService_ListPropagatesFetchError(t *testing.T) {
	store := &fakeInvoices{err: errs.NewFetchError("FetchFilteredInvoices", "Failed to fetch invoices.")}
	svc := NewInvoiceService(store)

	_, err := svc.List(context.Background(), "", 1)

	var fetchErr *errs.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "Failed to fetch invoices.", fetchErr.Message)
}

func TestInvoiceService_Pages(t *testing.T) {
	store := &fakeInvoices{pages: 4}
	svc := NewInvoiceService(store)

	pages, err := svc.Pages(context.Background(), "amy")
	require.NoError(t, err)

	assert.Equal(t, 4, pages)
	assert.Equal(t, "amy", store.gotQuery)
}

func newAuthService(t *testing.T, users UserStore, maxFailures int) (*AuthService, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := zerolog.Nop()
	return NewAuthService(users, ratelimit.New(client, maxFailures, 15*time.Minute), &logger), mr
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthenticate(t *testing.T) {
	id := uuid.New()
	users := &fakeUsers{users: map[string]*model.User{
		"user@nextmail.com": {ID: id, Name: "User", Email: "user@nextmail.com", Password: hashed(t, "123456")},
	}}
	svc, _ := newAuthService(t, users, 5)

	user, err := svc.Authenticate(context.Background(), "user@nextmail.com", "123456")
	require.NoError(t, err)

	assert.Equal(t, id, user.ID)
	assert.Empty(t, user.Password)
}

func TestAuthenticate_WrongPasswordAndUnknownUserLookAlike(t *testing.T) {
	users := &fakeUsers{users: map[string]*model.User{
		"user@nextmail.com": {Email: "user@nextmail.com", Password: hashed(t, "123456")},
	}}
	svc, _ := newAuthService(t, users, 5)

	_, wrongPassword := svc.Authenticate(context.Background(), "user@nextmail.com", "nope")
	_, unknownUser := svc.Authenticate(context.Background(), "ghost@nextmail.com", "123456")

	var a, b *errs.HTTPError
	require.True(t, errors.As(wrongPassword, &a))
	require.True(t, errors.As(unknownUser, &b))

	assert.Equal(t, http.StatusUnauthorized, a.Status)
	assert.Equal(t, a.Message, b.Message)
}

func TestAuthenticate_ThrottlesAfterMaxFailures(t *testing.T) {
	users := &fakeUsers{users: map[string]*model.User{
		"user@nextmail.com": {Email: "user@nextmail.com", Password: hashed(t, "123456")},
	}}
	svc, _ := newAuthService(t, users, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.Authenticate(ctx, "user@nextmail.com", "wrong")
		require.Error(t, err)
	}

	calls := users.calls
	_, err := svc.Authenticate(ctx, "user@nextmail.com", "123456")

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusTooManyRequests, httpErr.Status)
	assert.Equal(t, calls, users.calls, "throttled attempts must not reach the database")
}

func TestAuthenticate_SuccessClearsFailures(t *testing.T) {
	users := &fakeUsers{users: map[string]*model.User{
		"user@nextmail.com": {Email: "user@nextmail.com", Password: hashed(t, "123456")},
	}}
	svc, mr := newAuthService(t, users, 3)
	ctx := context.Background()

	_, _ = svc.Authenticate(ctx, "user@nextmail.com", "wrong")
	_, err := svc.Authenticate(ctx, "user@nextmail.com", "123456")
	require.NoError(t, err)

	assert.False(t, mr.Exists("dashboard:login_failures:user@nextmail.com"))
}

func TestAuthenticate_FailsOpenWithoutRedis(t *testing.T) {
	users := &fakeUsers{users: map[string]*model.User{
		"user@nextmail.com": {Email: "user@nextmail.com", Password: hashed(t, "123456")},
	}}
	svc, mr := newAuthService(t, users, 1)
	mr.Close()

	user, err := svc.Authenticate(context.Background(), "user@nextmail.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, "user@nextmail.com", user.Email)
}

func TestAuthenticate_LookupFailure(t *testing.T) {
	users := &fakeUsers{err: errs.NewFetchError("GetUser", "Failed to fetch user.")}
	svc, _ := newAuthService(t, users, 5)

	_, err := svc.Authenticate(context.Background(), "user@nextmail.com", "123456")

	var fetchErr *errs.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "Failed to fetch user.", err.Error())
}
