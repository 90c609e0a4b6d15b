package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/apperrors"
	"github.com/SscSPs/distributor_ledger_app/internal/dto"
	"github.com/SscSPs/distributor_ledger_app/internal/middleware"
	"github.com/SscSPs/distributor_ledger_app/internal/validation"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error body returned by every handler.
// Fields is only present for validation failures.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields validation.Errors `json:"fields,omitempty"`
}

// respondError maps a service error onto an HTTP status. Unknown errors become a 500 with
// a generic message built from action, e.g. "Failed to post journal".
func respondError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		body := ErrorResponse{Error: err.Error()}
		if fields, ok := validation.AsErrors(err); ok {
			body.Error = "Validation failed"
			body.Fields = fields
		}
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflict", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "You are not allowed to perform this action"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		logger.Warn("Unauthorized", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	default:
		logger.Error("Request failed", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to " + action})
	}
}

// bindJSON decodes the request body into req and writes a 400 on failure.
// Binding-tag failures are reported per field.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if fields, ok := validation.FromValidator(err); ok {
			respondError(c, fields, "bind request")
			return false
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return false
	}
	return true
}

// bindQuery decodes query parameters into req and writes a 400 on failure.
func bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		if fields, ok := validation.FromValidator(err); ok {
			respondError(c, fields, "bind query")
			return false
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return false
	}
	return true
}

// requireUserID reads the authenticated user ID; it writes a 401 when the auth middleware did not run.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}

// optionalDate parses a YYYY-MM-DD value into errs under field. Empty input yields nil.
func optionalDate(raw, field string, errs validation.Errors) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := dto.ParseDate(raw)
	if err != nil {
		errs.Add(field, "must be a date in YYYY-MM-DD format")
		return nil
	}
	t := d.Time
	return &t
}

// asOfOrToday parses the asOf query parameter and defaults to the current UTC day.
func asOfOrToday(c *gin.Context, now time.Time) (time.Time, error) {
	errs := validation.Errors{}
	if t := optionalDate(c.Query("asOf"), "asOf", errs); t != nil {
		return *t, nil
	}
	if err := errs.OrNil(); err != nil {
		return time.Time{}, err
	}
	return dto.NewDate(now).Time, nil
}

func optionalString(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return &raw
}
