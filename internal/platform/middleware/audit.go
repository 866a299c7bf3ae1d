package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/surgicare/surgicare/internal/platform/auth"
)

// AuditEntry captures who touched which record, when, and how. Every
// request under /api/v1 produces one.
type AuditEntry struct {
	CallerID   string
	Resource   string
	Action     string // read, create, update, delete
	Path       string
	Method     string
	IPAddress  string
	RequestID  string
	StatusCode int
	Timestamp  time.Time
}

// AuditRecorder persists audit entries. Tests provide a mock; production
// falls back to structured logging when none is given.
type AuditRecorder interface {
	RecordAccess(entry AuditEntry) error
}

// AuditRecorderFunc is a function adapter for AuditRecorder.
type AuditRecorderFunc func(entry AuditEntry) error

func (f AuditRecorderFunc) RecordAccess(entry AuditEntry) error { return f(entry) }

// Audit returns middleware that logs access to the record API.
func Audit(logger zerolog.Logger, recorders ...AuditRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			path := req.URL.Path
			if !strings.HasPrefix(path, "/api/v1") {
				return next(c)
			}

			// Run the handler first so the response status is known.
			err := next(c)

			entry := AuditEntry{
				Path:       path,
				Method:     req.Method,
				IPAddress:  c.RealIP(),
				StatusCode: c.Response().Status,
				Timestamp:  time.Now().UTC(),
				Action:     methodToAction(req.Method),
				Resource:   resourceFromPath(path),
			}
			if id, ok := auth.CallerIDFromContext(req.Context()); ok {
				entry.CallerID = id.String()
			}
			if rid, ok := c.Get("request_id").(string); ok {
				entry.RequestID = rid
			}

			if len(recorders) > 0 && recorders[0] != nil {
				if recErr := recorders[0].RecordAccess(entry); recErr != nil {
					logger.Error().Err(recErr).
						Str("request_id", entry.RequestID).
						Msg("failed to record audit entry")
				}
			}

			logger.Info().
				Str("type", "record_audit").
				Str("request_id", entry.RequestID).
				Str("caller_id", entry.CallerID).
				Str("resource", entry.Resource).
				Str("action", entry.Action).
				Int("status", entry.StatusCode).
				Msg("record access")

			return err
		}
	}
}

func methodToAction(method string) string {
	switch method {
	case "POST":
		return "create"
	case "PUT", "PATCH":
		return "update"
	case "DELETE":
		return "delete"
	default:
		return "read"
	}
}

// resourceFromPath extracts the resource segment from /api/v1/<resource>/...
func resourceFromPath(path string) string {
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(parts) >= 3 && parts[0] == "api" && parts[1] == "v1" {
		return parts[2]
	}
	return ""
}
