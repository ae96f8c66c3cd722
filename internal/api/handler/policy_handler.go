package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spendflow/spend-console/internal/app/pages"
)

// Policies renders the policy engine view.
func (h *Console) Policies(c echo.Context) error {
	sess, backend, err := h.bind(c)
	if err != nil {
		return err
	}
	page := pages.NewPoliciesPage(backend, h.log, sess.User.ID)
	page.Load(c.Request().Context())
	return h.renderPage(c, http.StatusOK, "policies.html", "Policy Engine", sess, backend, page.TakeNotices(), page)
}

// PolicyCreate deploys a new policy from the form. Rule text that is not
// valid JSON never reaches the backend.
func (h *Console) PolicyCreate(c echo.Context) error {
	sess, backend, err := h.bind(c)
	if err != nil {
		return err
	}
	page := pages.NewPoliciesPage(backend, h.log, sess.User.ID)
	page.Load(c.Request().Context())

	form := pages.PolicyForm{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Active:      c.FormValue("active") == "true",
		RulesJSON:   c.FormValue("rules"),
	}
	page.Create(c.Request().Context(), form)
	return h.renderPage(c, http.StatusOK, "policies.html", "Policy Engine", sess, backend, page.TakeNotices(), page)
}

// PolicyToggle flips a policy's active flag.
func (h *Console) PolicyToggle(c echo.Context) error {
	sess, backend, err := h.bind(c)
	if err != nil {
		return err
	}
	page := pages.NewPoliciesPage(backend, h.log, sess.User.ID)
	page.Load(c.Request().Context())
	page.Toggle(c.Request().Context(), c.Param("id"))
	return h.renderPage(c, http.StatusOK, "policies.html", "Policy Engine", sess, backend, page.TakeNotices(), page)
}

// PolicyDelete removes a policy.
func (h *Console) PolicyDelete(c echo.Context) error {
	sess, backend, err := h.bind(c)
	if err != nil {
		return err
	}
	page := pages.NewPoliciesPage(backend, h.log, sess.User.ID)
	page.Load(c.Request().Context())
	page.Delete(c.Request().Context(), c.Param("id"))
	return h.renderPage(c, http.StatusOK, "policies.html", "Policy Engine", sess, backend, page.TakeNotices(), page)
}
