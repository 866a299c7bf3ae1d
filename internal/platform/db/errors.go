package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ConstraintError reports a column-level constraint violation (enum
// membership, not-null, foreign key, uniqueness) with the offending field.
// It is a distinct failure class from an authorization denial and stays
// distinguishable to the caller.
type ConstraintError struct {
	Field  string
	Reason string
}

func (e *ConstraintError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewConstraintError builds a ConstraintError for a field.
func NewConstraintError(field, format string, args ...interface{}) *ConstraintError {
	return &ConstraintError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsConstraintError reports whether err is a ConstraintError and returns it.
func IsConstraintError(err error) (*ConstraintError, bool) {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// Postgres error classes for integrity constraint violations.
const (
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

// MapError converts postgres integrity violations into ConstraintError so
// services report the offending column instead of a driver error. Other
// errors pass through unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgNotNullViolation:
		return &ConstraintError{Field: pgErr.ColumnName, Reason: "must not be null"}
	case pgForeignKeyViolation:
		return &ConstraintError{Field: pgErr.ConstraintName, Reason: "referenced row does not exist"}
	case pgUniqueViolation:
		return &ConstraintError{Field: pgErr.ConstraintName, Reason: "already exists"}
	case pgCheckViolation:
		return &ConstraintError{Field: pgErr.ConstraintName, Reason: "value not allowed"}
	}
	return err
}
