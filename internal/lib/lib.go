// Package lib holds helpers that do not belong to a single layer:
// money formatting (currency) and Redis backed throttling (ratelimit).
package lib
