package sqlerr

import (
	"errors"

	"github.com/deppfellow/dashboard-data/internal/errs"
)

// HandleError converts an error reaching the HTTP layer into an
// *errs.HTTPError safe to send to clients.
//
//   - *errs.HTTPError: returned unchanged
//   - *errs.FetchError: 503 when no connection was available, otherwise 500
//     carrying the operation's safe message
//   - *errs.ConnectionError: 503
//   - anything else: 500 with the generic status text
//
// Driver errors never get here: the repository logs them and hands back a
// FetchError. They are categorised for those logs by Classify.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var fetchErr *errs.FetchError
	if errors.As(err, &fetchErr) {
		if fetchErr.IsConnection() {
			return errs.NewServiceUnavailableError("Database is temporarily unavailable")
		}
		return errs.NewFetchFailedError(fetchErr)
	}

	var connErr *errs.ConnectionError
	if errors.As(err, &connErr) {
		return errs.NewServiceUnavailableError("Database is temporarily unavailable")
	}

	return errs.NewInternalServerError()
}
