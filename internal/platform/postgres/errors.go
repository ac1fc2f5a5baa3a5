// Package postgres implements the store interfaces on PostgreSQL.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	pgUniqueViolationCode     = "23505"
	pgForeignKeyViolationCode = "23503"
)

// isUniqueViolation checks if the given error is a PostgreSQL unique
// constraint violation. This is how concurrent creators of the same review
// detect that they lost the race.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode
}

// isForeignKeyViolation checks if the given error is a PostgreSQL foreign key
// constraint violation, e.g. enrolling a word that no longer exists.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolationCode
}
