package errs

import "fmt"

// ConnectionError reports that no database connection could be acquired:
// the pool is closed or exhausted, the server is unreachable, or the
// caller's context ended while waiting.
//
// It carries no driver detail. The underlying error is logged where it
// occurs and never travels with the returned value.
type ConnectionError struct {
	Op string
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s: database connection unavailable", e.Op)
}

// FetchError is the single error shape returned by every data-access
// operation. Message is safe to show to users ("Failed to fetch ...").
//
// When the failure was connection acquisition, errors.As(err,
// *ConnectionError) succeeds; for query and mapping failures nothing
// further is reachable through Unwrap.
type FetchError struct {
	Op      string
	Message string
	conn    *ConnectionError
}

func (e *FetchError) Error() string {
	return e.Message
}

func (e *FetchError) Unwrap() error {
	if e.conn == nil {
		return nil
	}
	return e.conn
}

// IsConnection reports whether the fetch failed before a query was sent.
func (e *FetchError) IsConnection() bool {
	return e.conn != nil
}

// NewFetchError builds the error for a failed query or row mapping.
func NewFetchError(op, message string) *FetchError {
	return &FetchError{Op: op, Message: message}
}

// NewFetchConnectionError builds the error for a failed acquisition.
func NewFetchConnectionError(op, message string) *FetchError {
	return &FetchError{Op: op, Message: message, conn: &ConnectionError{Op: op}}
}
