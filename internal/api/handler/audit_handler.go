package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/spendflow/spend-console/internal/app/pages"
)

// Audit renders the filterable audit log.
func (h *Console) Audit(c echo.Context) error {
	sess, backend, err := h.bind(c)
	if err != nil {
		return err
	}
	page := pages.NewAuditPage(backend, h.log)
	page.Action = c.QueryParam("action")
	page.EntityType = c.QueryParam("entity_type")
	if n, err := strconv.Atoi(c.QueryParam("page")); err == nil && n > 0 {
		page.Page = n
	}
	page.Load(c.Request().Context())
	return h.renderPage(c, http.StatusOK, "audit.html", "Audit Logs", sess, backend, page.TakeNotices(), page)
}

// Settings renders the profile and category metadata view.
func (h *Console) Settings(c echo.Context) error {
	sess, backend, err := h.bind(c)
	if err != nil {
		return err
	}
	page := pages.NewSettingsPage(backend, h.log)
	page.Load(c.Request().Context())
	return h.renderPage(c, http.StatusOK, "settings.html", "Settings", sess, backend, page.TakeNotices(), page)
}
