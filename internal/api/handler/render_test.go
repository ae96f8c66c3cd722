package handler

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/spendflow/spend-console/internal/app/pages"
	"github.com/spendflow/spend-console/internal/app/session"
	"github.com/spendflow/spend-console/internal/core/domain"
	"github.com/spendflow/spend-console/internal/core/ports"
)

func testSession() *session.Session {
	return &session.Session{
		ID:    "sess-1",
		User:  domain.User{ID: "usr-1", FullName: "Dana Cole", Email: "dana@acme.test", Role: domain.RoleManager},
		Roles: []string{domain.RoleManager},
	}
}

func TestRenderer_ParsesAllViews(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	for _, name := range []string{
		"login.html", "dashboard.html", "spends.html", "spend_new.html",
		"spend_detail.html", "approvals.html", "notifications.html",
		"policies.html", "audit.html", "settings.html", "not_found.html", "error.html",
	} {
		if _, ok := r.templates[name]; !ok {
			t.Errorf("view %s not registered", name)
		}
	}
}

func TestRenderer_SpendsPageShowsShellAndRows(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	page := &pages.SpendsPage{
		Data: &ports.Page[domain.Spend]{
			Total: 1,
			Items: []domain.Spend{{
				ID:          "sp-1",
				Amount:      1234.5,
				Currency:    "USD",
				Category:    "travel",
				Description: "Taxi to client site",
				Status:      domain.StatusPending,
				CreatedAt:   time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
			}},
		},
	}
	page.Page = 1

	vm := shellModel("My Spends", testSession(), "3", nil, page)
	var buf strings.Builder
	if err := r.Render(&buf, "spends.html", vm, nil); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Dana Cole",        // shell user
		"Approvals",        // manager sees the approvals nav entry
		"Taxi to client site",
		"$1,234.50",
		"Pending",
		"Mar 14, 2026",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
	if strings.Contains(out, "Audit Logs") {
		t.Error("manager must not see the audit nav entry")
	}
}

func TestRenderer_ErrorViewRendersBare(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	var buf strings.Builder
	if err := r.Render(&buf, "not_found.html", ErrorView("spend not found"), nil); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "404") || !strings.Contains(out, "spend not found") {
		t.Errorf("not-found view incomplete: %s", out)
	}
	if strings.Contains(out, "sidebar") {
		t.Error("error views render outside the authenticated shell")
	}
}

func TestRenderer_UnreadBadgeInShell(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	page := pages.NewSettingsPage(nil, zerolog.Nop())
	vm := shellModel("Settings", testSession(), "9+", nil, page)
	var buf strings.Builder
	if err := r.Render(&buf, "settings.html", vm, nil); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), `<span class="badge">9+</span>`) {
		t.Error("unread badge not rendered on the notifications entry")
	}
}
