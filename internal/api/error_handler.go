package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/spendflow/spend-console/internal/api/handler"
	"github.com/spendflow/spend-console/internal/app/session"
	"github.com/spendflow/spend-console/internal/core/domain"
)

// errorResponse is the canonical error envelope for JSON endpoints.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Sends expired sessions back through the login flow.
//   - Renders the not-found view for missing spends and unknown routes, and
//     the error view for everything else; JSON endpoints get a JSON envelope.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, domain.ErrNotAuthenticated) || errors.Is(err, session.ErrNotFound) {
			_ = c.Redirect(http.StatusFound, "/login")
			return
		}

		code, msg := resolveError(err, log, c)

		if acceptsJSON(c) {
			_ = c.JSON(code, errorResponse{Error: msg})
			return
		}

		view := "error.html"
		if code == http.StatusNotFound {
			view = "not_found.html"
		}
		if renderErr := c.Render(code, view, handler.ErrorView(msg)); renderErr != nil {
			_ = c.String(code, msg)
		}
	}
}

func acceptsJSON(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON) ||
		strings.HasPrefix(c.Path(), "/api/")
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors map to deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrSpendNotFound):
		return http.StatusNotFound, "spend not found"
	case errors.Is(err, domain.ErrPolicyNotFound):
		return http.StatusNotFound, "policy not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusBadGateway, "receipt upload failed"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
