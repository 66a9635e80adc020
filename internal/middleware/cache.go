package middleware

import "github.com/labstack/echo/v4"

// NoStore marks responses as uncacheable. Dashboard data is read fresh
// from the database on every request and must not be served from a
// browser or proxy cache either.
func NoStore() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("Cache-Control", "no-store")
			h.Set("Pragma", "no-cache")
			return next(c)
		}
	}
}
