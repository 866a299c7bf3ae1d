package httperr

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/surgicare/surgicare/internal/platform/authz"
	"github.com/surgicare/surgicare/internal/platform/db"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"unauthenticated", authz.ErrUnauthenticated, http.StatusUnauthorized},
		{"not found", authz.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("resolve: %w", authz.ErrNotFound), http.StatusNotFound},
		{"constraint violation", db.NewConstraintError("role", "invalid"), http.StatusBadRequest},
		{"wrapped constraint", fmt.Errorf("save: %w", db.NewConstraintError("email", "duplicate")), http.StatusBadRequest},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := From(tt.err)
			if httpErr.Code != tt.code {
				t.Errorf("expected %d, got %d", tt.code, httpErr.Code)
			}
		})
	}
}

func TestFrom_ConstraintKeepsField(t *testing.T) {
	httpErr := From(db.NewConstraintError("status", "invalid status: done"))
	msg, ok := httpErr.Message.(string)
	if !ok {
		t.Fatalf("expected string message, got %T", httpErr.Message)
	}
	if msg != "status: invalid status: done" {
		t.Errorf("expected field in message, got %q", msg)
	}
}
