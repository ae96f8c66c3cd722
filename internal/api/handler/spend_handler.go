package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/spendflow/spend-console/internal/app/pages"
)

// Dashboard renders the role-dependent landing page.
func (h *Console) Dashboard(c echo.Context) error {
	sess, backend, err := h.bind(c)
	if err != nil {
		return err
	}
	page := pages.NewDashboardPage(backend, h.log, actorFrom(sess), sess.IsApprover())
	page.Load(c.Request().Context())
	return h.renderPage(c, http.StatusOK, "dashboard.html", "Dashboard", sess, backend, page.TakeNotices(), page)
}

// DashboardDecide handles the dashboard's one-click approve/reject buttons
// and re-renders the refreshed queue.
func (h *Console) DashboardDecide(c echo.Context) error {
	sess, backend, err := h.bind(c)
	if err != nil {
		return err
	}
	page := pages.NewDashboardPage(backend, h.log, actorFrom(sess), sess.IsApprover())
	page.Load(c.Request().Context())

	spendID := c.Param("id")
	if c.Param("decision") == "reject" {
		page.QuickReject(c.Request().Context(), spendID)
	} else {
		page.QuickApprove(c.Request().Context(), spendID)
	}
	return h.renderPage(c, http.StatusOK, "dashboard.html", "Dashboard", sess, backend, page.TakeNotices(), page)
}

// Spends renders the filterable list of the user's spends.
func (h *Console) Spends(c echo.Context) error {
	sess, backend, err := h.bind(c)
	if err != nil {
		return err
	}
	page := pages.NewSpendsPage(backend, h.log)
	page.Status = c.QueryParam("status")
	if n, err := strconv.Atoi(c.QueryParam("page")); err == nil && n > 0 {
		page.Page = n
	}
	page.Load(c.Request().Context())
	return h.renderPage(c, http.StatusOK, "spends.html", "My Spends", sess, backend, page.TakeNotices(), page)
}

// SpendDetail renders a single spend with its approval timeline.
func (h *Console) SpendDetail(c echo.Context) error {
	sess, backend, err := h.bind(c)
	if err != nil {
		return err
	}
	page := pages.NewSpendDetailPage(backend, h.log, c.Param("id"))
	page.Load(c.Request().Context())
	if page.NotFound {
		return c.Render(http.StatusNotFound, "not_found.html", ErrorView("spend not found"))
	}
	title := "Spend"
	if page.Spend != nil {
		title = page.Spend.Description
	}
	return h.renderPage(c, http.StatusOK, "spend_detail.html", title, sess, backend, page.TakeNotices(), page)
}

// spendNewModel is the render model for the create-spend form: the controller
// plus the echoed-back form values and their inline errors.
type spendNewModel struct {
	Controller  *pages.CreateSpendPage
	Form        pages.SpendForm
	FieldErrors map[string]string
}

// SpendNew renders the blank create-spend form.
func (h *Console) SpendNew(c echo.Context) error {
	sess, backend, err := h.bind(c)
	if err != nil {
		return err
	}
	page := pages.NewCreateSpendPage(backend, h.uploader, h.log)
	page.Load(c.Request().Context())
	model := spendNewModel{Controller: page, Form: pages.SpendForm{Currency: "USD"}}
	return h.renderPage(c, http.StatusOK, "spend_new.html", "New Spend", sess, backend, page.TakeNotices(), model)
}

// SpendCreate validates and submits the form. Field errors re-render the form
// inline; success navigates to the new spend's detail view.
func (h *Console) SpendCreate(c echo.Context) error {
	sess, backend, err := h.bind(c)
	if err != nil {
		return err
	}
	page := pages.NewCreateSpendPage(backend, h.uploader, h.log)

	amount, _ := strconv.ParseFloat(c.FormValue("amount"), 64)
	form := pages.SpendForm{
		Amount:      amount,
		Currency:    c.FormValue("currency"),
		Category:    c.FormValue("category"),
		Description: c.FormValue("description"),
	}

	var attachment *pages.Attachment
	if fh, err := c.FormFile("receipt"); err == nil && fh.Size > 0 {
		f, err := fh.Open()
		if err != nil {
			return err
		}
		defer f.Close()
		attachment = &pages.Attachment{Filename: fh.Filename, Content: f}
	}

	id, fieldErrs, err := page.Submit(c.Request().Context(), form, attachment)
	if err != nil || len(fieldErrs) > 0 {
		page.Load(c.Request().Context())
		model := spendNewModel{Controller: page, Form: form, FieldErrors: fieldErrs}
		return h.renderPage(c, http.StatusOK, "spend_new.html", "New Spend", sess, backend, page.TakeNotices(), model)
	}
	return c.Redirect(http.StatusFound, "/spends/"+id)
}
