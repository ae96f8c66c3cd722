package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/spendflow/spend-console/internal/app/session"
	"github.com/spendflow/spend-console/internal/core/domain"
	"github.com/spendflow/spend-console/internal/core/ports"
	"github.com/spendflow/spend-console/internal/infrastructure/identity"
)

// BackendFactory binds a backend client to a per-session token source. The
// router owns the base configuration; handlers only supply the tokens.
type BackendFactory func(ports.TokenSource) ports.Backend

// AuthCookie describes the session cookie the gateway issues.
type AuthCookie struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// SessionStore is the slice of session persistence the auth flow needs.
type SessionStore interface {
	Save(ctx context.Context, sess *session.Session) error
	Get(ctx context.Context, id string) (*session.Session, error)
	Delete(ctx context.Context, id string) error
}

// AuthHandler drives the hosted-login flow: redirect out, exchange the code
// on callback, mint a session, and tear it down again on logout.
type AuthHandler struct {
	provider    *identity.Provider
	backends    BackendFactory
	store       SessionStore
	cookie      AuthCookie
	callbackURL string
	log         zerolog.Logger
}

func NewAuthHandler(provider *identity.Provider, backends BackendFactory, store SessionStore, cookie AuthCookie, callbackURL string, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		provider:    provider,
		backends:    backends,
		store:       store,
		cookie:      cookie,
		callbackURL: callbackURL,
		log:         log,
	}
}

// Home is the public front door. A browser that already holds a live session
// goes straight to the dashboard; everyone else sees the sign-in landing. A
// stale cookie falls through to the landing rather than bouncing to /login.
func (h *AuthHandler) Home(c echo.Context) error {
	if cookie, err := c.Cookie(h.cookie.Name); err == nil && cookie.Value != "" {
		if _, err := h.store.Get(c.Request().Context(), cookie.Value); err == nil {
			return c.Redirect(http.StatusFound, "/dashboard")
		}
	}
	return c.Render(http.StatusOK, "login.html", viewModel{Title: "SpendFlow"})
}

// LoginPage renders the public landing view.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", viewModel{Title: "Sign in"})
}

// Start redirects to the identity provider's hosted login. The session id is
// minted up front and doubles as the OAuth state parameter.
func (h *AuthHandler) Start(c echo.Context) error {
	state := session.NewID()
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name + "_state",
		Value:    state,
		Path:     "/",
		MaxAge:   int(5 * time.Minute / time.Second),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, h.provider.LoginURL(state, h.callbackURL))
}

// Callback completes the code exchange, resolves the user's identity and
// backend profile, and persists the session.
func (h *AuthHandler) Callback(c echo.Context) error {
	code := c.QueryParam("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing authorization code")
	}
	stateCookie, err := c.Cookie(h.cookie.Name + "_state")
	if err != nil || stateCookie.Value == "" || stateCookie.Value != c.QueryParam("state") {
		return echo.NewHTTPError(http.StatusBadRequest, "state mismatch")
	}

	ctx := c.Request().Context()
	tokens, err := h.provider.Exchange(ctx, code, h.callbackURL)
	if err != nil {
		h.log.Warn().Err(err).Msg("code exchange failed")
		return echo.NewHTTPError(http.StatusUnauthorized, "login failed")
	}

	ident, err := h.provider.IdentityFromTokens(tokens)
	if err != nil {
		h.log.Warn().Err(err).Msg("id token unreadable")
		return echo.NewHTTPError(http.StatusUnauthorized, "login failed")
	}

	sess := &session.Session{
		ID:        session.NewID(),
		Roles:     ident.Roles,
		Tokens:    *tokens,
		CreatedAt: time.Now(),
	}

	// The backend profile is authoritative for display data; the claims only
	// fill in when the profile call fails.
	backend := h.backends(ports.TokenSourceFunc(func(context.Context) (string, error) {
		return tokens.AccessToken, nil
	}))
	if profile, err := backend.GetMe(ctx); err == nil {
		sess.User = *profile
	} else {
		h.log.Warn().Err(err).Msg("profile fetch failed, falling back to claims")
		sess.User = domain.User{ID: ident.Subject, Email: ident.Email, FullName: ident.Name}
	}

	if err := h.store.Save(ctx, sess); err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(h.cookie.MaxAge / time.Second),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, "/dashboard")
}

// Logout deletes the session server-side, clears the cookie, and sends the
// browser through the provider's logout endpoint.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cookie.Name); err == nil && cookie.Value != "" {
		if err := h.store.Delete(c.Request().Context(), cookie.Value); err != nil {
			h.log.Warn().Err(err).Msg("session delete failed")
		}
	}
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
	})
	returnTo := c.Scheme() + "://" + c.Request().Host + "/login"
	return c.Redirect(http.StatusFound, h.provider.LogoutURL(returnTo))
}
