// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns
// such as request ids, request-scoped logging, CORS, cache
// headers, rate limiting, tracing and panic recovery
package middleware
