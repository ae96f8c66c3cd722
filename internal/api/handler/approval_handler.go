package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spendflow/spend-console/internal/app/pages"
	"github.com/spendflow/spend-console/internal/app/session"
)

func actorFrom(sess *session.Session) pages.Actor {
	return pages.Actor{ID: sess.User.ID, Name: sess.User.FullName}
}

// Approvals renders the pending queue for approvers.
func (h *Console) Approvals(c echo.Context) error {
	sess, backend, err := h.bind(c)
	if err != nil {
		return err
	}
	page := pages.NewApprovalsPage(backend, h.log, actorFrom(sess))
	page.Load(c.Request().Context())
	return h.renderPage(c, http.StatusOK, "approvals.html", "Approvals", sess, backend, page.TakeNotices(), page)
}

// ApprovalDecide handles the approve and reject forms, carrying the optional
// comment, and re-renders the refreshed queue.
func (h *Console) ApprovalDecide(c echo.Context) error {
	sess, backend, err := h.bind(c)
	if err != nil {
		return err
	}
	page := pages.NewApprovalsPage(backend, h.log, actorFrom(sess))
	page.Load(c.Request().Context())

	spendID := c.Param("id")
	comment := c.FormValue("comment")
	if c.Param("decision") == "reject" {
		page.Reject(c.Request().Context(), spendID, comment)
	} else {
		page.Approve(c.Request().Context(), spendID, comment)
	}
	return h.renderPage(c, http.StatusOK, "approvals.html", "Approvals", sess, backend, page.TakeNotices(), page)
}
