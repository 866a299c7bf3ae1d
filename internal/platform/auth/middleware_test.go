package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var testKey = []byte("test-signing-key")

func signToken(t *testing.T, claims Claims, key []byte) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func runWithAuth(t *testing.T, mw echo.MiddlewareFunc, req *http.Request) (uuid.UUID, bool, error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got uuid.UUID
	var ok bool
	handler := mw(func(c echo.Context) error {
		got, ok = CallerIDFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})
	return got, ok, handler(c)
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	id := uuid.New()
	token := signToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, testKey)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	got, ok, err := runWithAuth(t, JWTMiddleware(JWTConfig{SigningKey: testKey}), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || got != id {
		t.Errorf("expected caller id %s on context, got %s (ok=%v)", id, got, ok)
	}
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, _, err := runWithAuth(t, JWTMiddleware(JWTConfig{SigningKey: testKey}), req)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestJWTMiddleware_WrongKey(t *testing.T) {
	token := signToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, []byte("other-key"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	_, _, err := runWithAuth(t, JWTMiddleware(JWTConfig{SigningKey: testKey}), req)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for forged token, got %v", err)
	}
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	token := signToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}, testKey)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	_, _, err := runWithAuth(t, JWTMiddleware(JWTConfig{SigningKey: testKey}), req)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for expired token, got %v", err)
	}
}

func TestJWTMiddleware_NonUUIDSubject(t *testing.T) {
	token := signToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "not-a-uuid",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, testKey)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	_, _, err := runWithAuth(t, JWTMiddleware(JWTConfig{SigningKey: testKey}), req)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for invalid subject, got %v", err)
	}
}

func TestDevAuthMiddleware(t *testing.T) {
	id := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User-ID", id.String())

	got, ok, err := runWithAuth(t, DevAuthMiddleware(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || got != id {
		t.Errorf("expected caller id %s, got %s", id, got)
	}
}

func TestDevAuthMiddleware_NoHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok, err := runWithAuth(t, DevAuthMiddleware(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected no caller identity without the header")
	}
}

func TestCallerIDRoundTrip(t *testing.T) {
	if _, ok := CallerIDFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context()); ok {
		t.Error("expected empty context to carry no caller id")
	}
}
