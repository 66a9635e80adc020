package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
)

// sslModesWithTLS are the libpq sslmode values that actually refuse a
// plaintext connection.
var sslModesWithTLS = map[string]bool{
	"require":     true,
	"verify-ca":   true,
	"verify-full": true,
}

// UsesTLS reports whether connections built from this config must use TLS.
// A non-empty URL always requires TLS.
func (c DatabaseConfig) UsesTLS() bool {
	if c.URL != "" {
		return true
	}
	return sslModesWithTLS[c.SSLMode]
}

// DSN returns the connection string handed to pgx.
//
// When URL is set it is used as-is, except that a missing or weaker sslmode
// is raised to "require". Otherwise a postgres:// URL is assembled from the
// discrete fields, URL-escaping the credentials.
func (c DatabaseConfig) DSN() (string, error) {
	if c.URL != "" {
		u, err := url.Parse(c.URL)
		if err != nil {
			return "", fmt.Errorf("parse database url: %w", err)
		}
		if u.Scheme != "postgres" && u.Scheme != "postgresql" {
			return "", fmt.Errorf("database url must use the postgres scheme, got %q", u.Scheme)
		}

		q := u.Query()
		if !sslModesWithTLS[q.Get("sslmode")] {
			q.Set("sslmode", "require")
		}
		u.RawQuery = q.Encode()

		return u.String(), nil
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Name,
	}
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()

	return u.String(), nil
}
