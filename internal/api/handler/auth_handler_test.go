package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/spendflow/spend-console/internal/app/session"
)

type fakeSessionStore struct {
	sessions map[string]*session.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]*session.Session{}}
}

func (s *fakeSessionStore) Save(_ context.Context, sess *session.Session) error {
	s.sessions[sess.ID] = sess
	return nil
}

func (s *fakeSessionStore) Get(_ context.Context, id string) (*session.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, session.ErrNotFound
	}
	return sess, nil
}

func (s *fakeSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func newHomeFixture(t *testing.T, store SessionStore) (*echo.Echo, *AuthHandler) {
	t.Helper()
	e := echo.New()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	e.Renderer = r
	h := NewAuthHandler(nil, nil, store, AuthCookie{Name: "sf_session"}, "", zerolog.Nop())
	return e, h
}

func TestAuthHandler_HomeAnonymousRendersLanding(t *testing.T) {
	e, h := newHomeFixture(t, newFakeSessionStore())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	if err := h.Home(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Home: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for anonymous visitor, got %d (location %q)", rec.Code, rec.Header().Get("Location"))
	}
	if body := rec.Body.String(); !strings.Contains(body, "/login/start") {
		t.Errorf("landing page should offer the sign-in entry point, got:\n%s", body)
	}
}

func TestAuthHandler_HomeWithSessionRedirectsToDashboard(t *testing.T) {
	store := newFakeSessionStore()
	store.sessions["sess-live"] = testSession()
	e, h := newHomeFixture(t, store)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sf_session", Value: "sess-live"})
	rec := httptest.NewRecorder()
	if err := h.Home(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Home: %v", err)
	}

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("expected redirect to /dashboard, got %q", loc)
	}
}

func TestAuthHandler_HomeWithStaleCookieRendersLanding(t *testing.T) {
	e, h := newHomeFixture(t, newFakeSessionStore())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sf_session", Value: "sess-expired"})
	rec := httptest.NewRecorder()
	if err := h.Home(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Home: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected landing for stale cookie, got %d", rec.Code)
	}
}
