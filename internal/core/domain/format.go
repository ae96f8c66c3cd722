package domain

import (
	"fmt"
	"strings"
	"time"
)

// StatusBadge holds the display configuration for a spend status. The CSS
// classes mirror the console's utility stylesheet.
type StatusBadge struct {
	Label    string
	Color    string
	BgColor  string
	DotColor string
}

var statusBadges = map[SpendStatus]StatusBadge{
	StatusDraft:    {Label: "Draft", Color: "text-slate-600", BgColor: "bg-slate-100", DotColor: "bg-slate-400"},
	StatusPending:  {Label: "Pending", Color: "text-amber-700", BgColor: "bg-amber-100", DotColor: "bg-amber-500"},
	StatusApproved: {Label: "Approved", Color: "text-emerald-700", BgColor: "bg-emerald-100", DotColor: "bg-emerald-500"},
	StatusRejected: {Label: "Rejected", Color: "text-red-700", BgColor: "bg-red-100", DotColor: "bg-red-500"},
	StatusBlocked:  {Label: "Blocked", Color: "text-slate-900", BgColor: "bg-slate-200", DotColor: "bg-slate-600"},
}

// genericBadge is rendered for any status outside the fixed enumeration, so a
// list row never goes unstyled because the backend grew a new status.
var genericBadge = StatusBadge{Label: "Unknown", Color: "text-slate-500", BgColor: "bg-slate-100", DotColor: "bg-slate-300"}

// Badge returns the display configuration for a status, falling back to a
// generic badge for unrecognized values.
func (s SpendStatus) Badge() StatusBadge {
	if b, ok := statusBadges[s]; ok {
		return b
	}
	return genericBadge
}

// CategoryLabels maps category keys to their display names.
var CategoryLabels = map[string]string{
	"travel":                "Travel",
	"meals":                 "Meals & Entertainment",
	"software":              "Software",
	"equipment":             "Equipment",
	"office_supplies":       "Office Supplies",
	"marketing":             "Marketing",
	"professional_services": "Professional Services",
	"other":                 "Other",
}

// CategoryLabel returns the display name for a category key, or the key
// itself when no label is registered.
func CategoryLabel(key string) string {
	if l, ok := CategoryLabels[key]; ok {
		return l
	}
	return key
}

// CurrencySymbols maps ISO currency codes to their display symbols.
var CurrencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"CAD": "C$",
	"AUD": "A$",
}

// FormatCurrency renders an amount as "$1,234.50" using the symbol for the
// given currency code, defaulting to "$" for unknown codes.
func FormatCurrency(amount float64, currency string) string {
	symbol, ok := CurrencySymbols[currency]
	if !ok {
		symbol = "$"
	}
	return symbol + groupThousands(fmt.Sprintf("%.2f", amount))
}

// groupThousands inserts comma separators into the integer part of a
// formatted decimal string.
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// FormatDate renders a timestamp as "Feb 10, 2026". Zero times render as a dash.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("Jan 2, 2006")
}

// FormatDateTime renders a timestamp as "Feb 10, 2026, 4:00 PM".
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("Jan 2, 2006, 3:04 PM")
}

// RelativeTime renders a human-readable distance from now ("2h ago"),
// degrading to FormatDate beyond a week.
func RelativeTime(t time.Time, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
	return FormatDate(t)
}

// Initials derives up to two uppercase initials for avatar placeholders.
func Initials(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "??"
	}
	var initials []rune
	for _, f := range fields {
		initials = append(initials, []rune(strings.ToUpper(f))[0])
		if len(initials) == 2 {
			break
		}
	}
	return string(initials)
}
