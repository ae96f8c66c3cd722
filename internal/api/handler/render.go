package handler

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/spendflow/spend-console/internal/app/nav"
	"github.com/spendflow/spend-console/internal/app/pages"
	"github.com/spendflow/spend-console/internal/app/session"
	"github.com/spendflow/spend-console/internal/core/domain"
)

//go:embed views/*.html
var viewsFS embed.FS

// StaticFS holds the stylesheet and any other assets served under /static.
//
//go:embed static
var StaticFS embed.FS

// viewModel is the envelope every rendered page receives: the shared shell
// state plus the page controller itself under Page.
type viewModel struct {
	Title   string
	User    *domain.User
	Nav     []nav.Entry
	Badge   string
	Notices []pages.Notice
	Page    any
	Message string
}

// Renderer implements echo.Renderer over the embedded views. Each page
// template is parsed together with the layout so the shell wraps everything.
type Renderer struct {
	templates map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"currency":      domain.FormatCurrency,
		"date":          domain.FormatDate,
		"datetime":      domain.FormatDateTime,
		"relative":      func(t time.Time) string { return domain.RelativeTime(t, time.Now()) },
		"initials":      domain.Initials,
		"badge":         func(s domain.SpendStatus) domain.StatusBadge { return s.Badge() },
		"categoryLabel": domain.CategoryLabel,
	}

	names, err := fs.Glob(viewsFS, "views/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{templates: make(map[string]*template.Template)}
	for _, name := range names {
		if name == "views/layout.html" {
			continue
		}
		tpl, err := template.New("layout.html").Funcs(funcs).ParseFS(viewsFS, "views/layout.html", name)
		if err != nil {
			return nil, fmt.Errorf("parse view %s: %w", name, err)
		}
		r.templates[name[len("views/"):]] = tpl
	}
	return r, nil
}

// Render satisfies echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	tpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("unknown view %q", name)
	}
	return tpl.ExecuteTemplate(w, "layout.html", data)
}

// ErrorView builds the render model for the error and not-found views, which
// draw outside the authenticated shell.
func ErrorView(message string) any {
	return viewModel{Title: "Error", Message: message}
}

// shellModel assembles the shared shell state for an authenticated page.
func shellModel(title string, sess *session.Session, badge string, notices []pages.Notice, page any) viewModel {
	vm := viewModel{
		Title:   title,
		Badge:   badge,
		Notices: notices,
		Page:    page,
	}
	if sess != nil {
		vm.User = &sess.User
		vm.Nav = nav.Visible(sess.Roles)
	}
	return vm
}
