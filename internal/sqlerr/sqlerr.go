// Package sqlerr classifies database driver errors.
//
// It maps SQLSTATE codes reported by Postgres onto a small set of
// categories used for logging, and converts the data-access errors that
// reach the HTTP layer into user-safe errs.HTTPError values.
package sqlerr

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Code is a driver independent error category.
type Code string

const (
	Other                     Code = "other"
	NotNullViolation          Code = "not_null_violation"
	ForeignKeyViolation       Code = "foreign_key_violation"
	UniqueViolation           Code = "unique_violation"
	CheckViolation            Code = "check_violation"
	InvalidTextRepresentation Code = "invalid_text_representation"
	UndefinedTable            Code = "undefined_table"
	UndefinedColumn           Code = "undefined_column"
	InsufficientPrivilege     Code = "insufficient_privilege"
	QueryCanceled             Code = "query_canceled"
	TooManyConnections        Code = "too_many_connections"
	ConnectionFailure         Code = "connection_failure"
	NoRows                    Code = "no_rows"
	Canceled                  Code = "canceled"
)

var pgCodes = map[string]Code{
	"23502": NotNullViolation,
	"23503": ForeignKeyViolation,
	"23505": UniqueViolation,
	"23514": CheckViolation,
	"22P02": InvalidTextRepresentation,
	"42P01": UndefinedTable,
	"42703": UndefinedColumn,
	"42501": InsufficientPrivilege,
	"57014": QueryCanceled,
	"53300": TooManyConnections,
}

// MapCode maps a SQLSTATE onto a Code. Every class 08 state is a
// connection failure.
func MapCode(sqlState string) Code {
	if code, ok := pgCodes[sqlState]; ok {
		return code
	}
	if strings.HasPrefix(sqlState, "08") {
		return ConnectionFailure
	}
	return Other
}

// Classify returns the category of any error coming out of the driver,
// including the ones that are not Postgres server errors.
func Classify(err error) Code {
	if err == nil {
		return ""
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return MapCode(pgerr.Code)
	}

	var connectErr *pgconn.ConnectError
	switch {
	case errors.As(err, &connectErr), errors.Is(err, sql.ErrConnDone):
		return ConnectionFailure
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return Canceled
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, sql.ErrNoRows):
		return NoRows
	}

	return Other
}
