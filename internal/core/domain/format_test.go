package domain

import (
	"testing"
	"time"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		amount   float64
		currency string
		want     string
	}{
		{125.5, "USD", "$125.50"},
		{1234567.891, "EUR", "€1,234,567.89"},
		{0, "GBP", "£0.00"},
		{99.9, "XXX", "$99.90"},
		{-1450, "CAD", "C$-1,450.00"},
	}
	for _, c := range cases {
		if got := FormatCurrency(c.amount, c.currency); got != c.want {
			t.Errorf("FormatCurrency(%v, %q) = %q, want %q", c.amount, c.currency, got, c.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2026, time.February, 10, 16, 0, 0, 0, time.UTC)
	if got := FormatDate(ts); got != "Feb 10, 2026" {
		t.Fatalf("FormatDate = %q", got)
	}
	if got := FormatDate(time.Time{}); got != "—" {
		t.Fatalf("zero time = %q", got)
	}
	if got := FormatDateTime(ts); got != "Feb 10, 2026, 4:00 PM" {
		t.Fatalf("FormatDateTime = %q", got)
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		at   time.Time
		want string
	}{
		{now.Add(-30 * time.Second), "Just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-2 * time.Hour), "2h ago"},
		{now.Add(-3 * 24 * time.Hour), "3d ago"},
		{now.Add(-30 * 24 * time.Hour), "Jan 30, 2026"},
	}
	for _, c := range cases {
		if got := RelativeTime(c.at, now); got != c.want {
			t.Errorf("RelativeTime(%v) = %q, want %q", c.at, got, c.want)
		}
	}
}

func TestInitials(t *testing.T) {
	cases := []struct{ name, want string }{
		{"Sarah Chen", "SC"},
		{"madison", "M"},
		{"Jean Paul Ricard", "JP"},
		{"", "??"},
	}
	for _, c := range cases {
		if got := Initials(c.name); got != c.want {
			t.Errorf("Initials(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestCategoryLabel(t *testing.T) {
	if got := CategoryLabel("office_supplies"); got != "Office Supplies" {
		t.Fatalf("got %q", got)
	}
	if got := CategoryLabel("cloud_credits"); got != "cloud_credits" {
		t.Fatalf("unknown category should echo the key, got %q", got)
	}
}
