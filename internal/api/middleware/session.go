package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/spendflow/spend-console/internal/app/session"
)

const sessionKey = "session"

// SessionLoader resolves the session cookie against the store and injects the
// session into the request context. Requests without a valid session are
// redirected to the login flow; JSON endpoints get a 401 instead.
func SessionLoader(store *session.Store, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return denied(c)
			}

			sess, err := store.Get(c.Request().Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, session.ErrNotFound) {
					return denied(c)
				}
				return err
			}

			c.Set(sessionKey, sess)
			return next(c)
		}
	}
}

func denied(c echo.Context) error {
	if wantsJSON(c) {
		return echo.NewHTTPError(http.StatusUnauthorized, "session required")
	}
	return c.Redirect(http.StatusFound, "/login")
}

func wantsJSON(c echo.Context) bool {
	if strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON) {
		return true
	}
	return strings.HasPrefix(c.Path(), "/api/")
}

// SessionFrom returns the session injected by SessionLoader, or nil when the
// route runs without it.
func SessionFrom(c echo.Context) *session.Session {
	sess, _ := c.Get(sessionKey).(*session.Session)
	return sess
}
