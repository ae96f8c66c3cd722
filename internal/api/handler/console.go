package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/spendflow/spend-console/internal/api/middleware"
	"github.com/spendflow/spend-console/internal/app/pages"
	"github.com/spendflow/spend-console/internal/app/session"
	"github.com/spendflow/spend-console/internal/app/shell"
	"github.com/spendflow/spend-console/internal/core/ports"
	"github.com/spendflow/spend-console/internal/infrastructure/identity"
)

// PollIntervals carries the configured refresh cadences for the streaming
// endpoints. Zero values fall back to the page defaults.
type PollIntervals struct {
	Notifications time.Duration
	UnreadBadge   time.Duration
}

// Console serves every authenticated page. Controllers are built per request
// and live for exactly one render, mirroring a page mount.
type Console struct {
	backends  BackendFactory
	uploader  ports.ReceiptUploader
	refresher identity.Refresher
	store     *session.Store
	poll      PollIntervals
	log       zerolog.Logger
}

func NewConsole(backends BackendFactory, uploader ports.ReceiptUploader, refresher identity.Refresher, store *session.Store, poll PollIntervals, log zerolog.Logger) *Console {
	return &Console{
		backends:  backends,
		uploader:  uploader,
		refresher: refresher,
		store:     store,
		poll:      poll,
		log:       log,
	}
}

// bind resolves the request's session and a backend client bound to its
// token source.
func (h *Console) bind(c echo.Context) (*session.Session, ports.Backend, error) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		return nil, nil, echo.NewHTTPError(http.StatusUnauthorized, "session required")
	}
	return sess, h.backends(sess.TokenSource(h.refresher, h.store)), nil
}

// unreadBadge fetches the badge display for the shell, best effort. The page
// renders without it when the count call fails.
func (h *Console) unreadBadge(c echo.Context, backend ports.Backend) string {
	badge := shell.NewUnreadBadge(backend, h.log)
	if err := badge.Load(c.Request().Context()); err != nil {
		return ""
	}
	return badge.Display()
}

// renderPage draws a page controller inside the authenticated shell.
func (h *Console) renderPage(c echo.Context, status int, view, title string, sess *session.Session, backend ports.Backend, notices []pages.Notice, page any) error {
	vm := shellModel(title, sess, h.unreadBadge(c, backend), notices, page)
	return c.Render(status, view, vm)
}

// NotFound renders the catch-all view for unknown routes.
func (h *Console) NotFound(c echo.Context) error {
	return c.Render(http.StatusNotFound, "not_found.html", ErrorView(""))
}
