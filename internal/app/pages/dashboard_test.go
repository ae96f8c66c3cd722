package pages

import (
	"context"
	"testing"

	"github.com/spendflow/spend-console/internal/core/domain"
)

func TestDashboardPage_ApproverSeesPendingQueue(t *testing.T) {
	backend := newStubBackend()
	backend.spends = []domain.Spend{
		{ID: "sp-1", Amount: 100, Status: domain.StatusPending},
		{ID: "sp-2", Amount: 50, Status: domain.StatusApproved},
	}
	page := NewDashboardPage(backend, testLogger(), Actor{ID: "mgr-1", Name: "Dana Cole"}, true)

	if err := page.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if backend.lastListSpends.Status != string(domain.StatusPending) {
		t.Fatalf("approver dashboard must filter pending, got %q", backend.lastListSpends.Status)
	}
	if page.Stats.PendingCount != 1 || page.Stats.TotalValue != 100 {
		t.Fatalf("stats off: %+v", page.Stats)
	}
}

func TestDashboardPage_EmployeeSeesRecentSpends(t *testing.T) {
	backend := newStubBackend()
	backend.spends = []domain.Spend{
		{ID: "sp-1", Amount: 100, Status: domain.StatusPending},
		{ID: "sp-2", Amount: 50, Status: domain.StatusApproved},
		{ID: "sp-3", Amount: 25, Status: domain.StatusRejected},
	}
	page := NewDashboardPage(backend, testLogger(), Actor{ID: "emp-1", Name: "Sam Ortiz"}, false)

	if err := page.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if backend.lastListSpends.Status != "" {
		t.Fatalf("employee dashboard must not filter, got %q", backend.lastListSpends.Status)
	}
	stats := page.Stats
	if stats.TotalValue != 175 || stats.PendingCount != 1 || stats.ApprovedCount != 1 || stats.RejectedCount != 1 {
		t.Fatalf("stats off: %+v", stats)
	}
}

func TestDashboardPage_QuickApprove(t *testing.T) {
	backend := newStubBackend()
	backend.spends = []domain.Spend{{ID: "sp-1", Amount: 100, Status: domain.StatusPending}}
	page := NewDashboardPage(backend, testLogger(), Actor{ID: "mgr-1", Name: "Dana Cole"}, true)
	if err := page.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := page.QuickApprove(context.Background(), "sp-1"); err != nil {
		t.Fatalf("QuickApprove: %v", err)
	}
	if backend.lastDecision.Comment != "Quick Approval" {
		t.Fatalf("default comment missing: %q", backend.lastDecision.Comment)
	}
	if page.Data.Total != 0 {
		t.Fatalf("pending queue should be empty after reload, got %d", page.Data.Total)
	}
}
