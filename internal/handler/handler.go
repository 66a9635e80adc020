// Package handler is the first layer after the router.
//
// It binds and validates requests through the validation package,
// calls the service layer and renders the result as JSON. Errors are
// returned untouched for the global error handler to convert.
package handler
