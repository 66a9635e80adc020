// Package errs defines the error values that cross layer boundaries.
//
// Data-access code returns FetchError/ConnectionError; the HTTP layer
// renders HTTPError as JSON so clients always receive the same shape.
package errs
