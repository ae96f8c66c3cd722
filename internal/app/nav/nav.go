// Package nav derives the visible navigation set for the current identity.
// The filter is advisory UI logic only: hiding an entry does not protect its
// route, that stays with the session middleware and the backend's own checks.
package nav

import "github.com/spendflow/spend-console/internal/core/domain"

// Entry is a single sidebar item. A nil Roles allow-list means the entry is
// visible to everyone.
type Entry struct {
	Label string
	Href  string
	Icon  string
	Roles []string
}

// Entries is the fixed navigation table.
var Entries = []Entry{
	{Label: "Dashboard", Href: "/dashboard", Icon: "layout-dashboard"},
	{Label: "My Spends", Href: "/spends", Icon: "receipt", Roles: []string{domain.RoleEmployee}},
	{Label: "Approvals", Href: "/approvals", Icon: "file-text", Roles: []string{domain.RoleManager, domain.RoleFinance}},
	{Label: "Notifications", Href: "/notifications", Icon: "bell"},
	{Label: "Policies", Href: "/policies", Icon: "shield", Roles: []string{domain.RoleAdmin, domain.RoleFinance}},
	{Label: "Audit Logs", Href: "/audit", Icon: "file-text", Roles: []string{domain.RoleAdmin}},
	{Label: "Settings", Href: "/settings", Icon: "settings", Roles: []string{domain.RoleManager, domain.RoleFinance, domain.RoleAdmin}},
}

// VisibleTo reports whether the entry is shown to a user holding the given
// roles: no allow-list, or a non-empty intersection with it.
func (e Entry) VisibleTo(roles []string) bool {
	if len(e.Roles) == 0 {
		return true
	}
	for _, allowed := range e.Roles {
		for _, r := range roles {
			if r == allowed {
				return true
			}
		}
	}
	return false
}

// Visible filters the fixed table down to the entries the roles may see,
// preserving table order.
func Visible(roles []string) []Entry {
	out := make([]Entry, 0, len(Entries))
	for _, e := range Entries {
		if e.VisibleTo(roles) {
			out = append(out, e)
		}
	}
	return out
}
