// Package httperr maps service errors onto HTTP responses. Authorization
// denials and missing rows share one 404 shape; constraint violations keep
// their field so callers can correct input and retry.
package httperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/surgicare/surgicare/internal/platform/authz"
	"github.com/surgicare/surgicare/internal/platform/db"
)

// From converts a service error into an echo HTTP error.
func From(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, authz.ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	case errors.Is(err, authz.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	if ce, ok := db.IsConstraintError(err); ok {
		return echo.NewHTTPError(http.StatusBadRequest, ce.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}
