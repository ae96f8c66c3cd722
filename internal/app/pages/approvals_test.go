package pages

import (
	"context"
	"errors"
	"testing"

	"github.com/spendflow/spend-console/internal/core/domain"
)

func pendingSpend(id string, amount float64) domain.Spend {
	return domain.Spend{ID: id, Amount: amount, Currency: "USD", Status: domain.StatusPending}
}

func TestApprovalsPage_LoadRequestsPendingOnly(t *testing.T) {
	backend := newStubBackend()
	backend.spends = []domain.Spend{
		pendingSpend("sp-1", 120),
		{ID: "sp-2", Amount: 50, Status: domain.StatusApproved},
		pendingSpend("sp-3", 75),
	}
	page := NewApprovalsPage(backend, testLogger(), Actor{ID: "mgr-1", Name: "Dana Cole"})

	if err := page.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if backend.lastListSpends.Status != string(domain.StatusPending) {
		t.Fatalf("expected pending filter, got %q", backend.lastListSpends.Status)
	}
	if page.Data.Total != 2 {
		t.Fatalf("expected 2 pending spends, got %d", page.Data.Total)
	}
}

func TestApprovalsPage_ApproveCarriesActorAndDefaultComment(t *testing.T) {
	backend := newStubBackend()
	backend.spends = []domain.Spend{pendingSpend("sp-1", 120), pendingSpend("sp-2", 75)}
	page := NewApprovalsPage(backend, testLogger(), Actor{ID: "mgr-1", Name: "Dana Cole"})
	if err := page.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := page.Approve(context.Background(), "sp-1", ""); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	if backend.approveCalls != 1 {
		t.Fatalf("expected exactly one approve call, got %d", backend.approveCalls)
	}
	d := backend.lastDecision
	if d.SpendID != "sp-1" || d.ActorID != "mgr-1" || d.ActorName != "Dana Cole" {
		t.Fatalf("decision missing actor fields: %+v", d)
	}
	if d.Comment != "Quick Approval" {
		t.Fatalf("expected default comment, got %q", d.Comment)
	}

	// the acted-upon spend left the pending filter on reload
	if page.Data.Total != 1 || page.Data.Items[0].ID != "sp-2" {
		t.Fatalf("expected sp-1 gone after reload, got %+v", page.Data.Items)
	}

	seen := page.TakeNotices()
	if len(seen) != 1 || seen[0].Level != "success" {
		t.Fatalf("expected one success notice, got %+v", seen)
	}
}

func TestApprovalsPage_RejectKeepsExplicitComment(t *testing.T) {
	backend := newStubBackend()
	backend.spends = []domain.Spend{pendingSpend("sp-1", 120)}
	page := NewApprovalsPage(backend, testLogger(), Actor{ID: "fin-2", Name: "Ira Wolf"})

	if err := page.Reject(context.Background(), "sp-1", "missing receipt"); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if backend.rejectCalls != 1 {
		t.Fatalf("expected one reject call, got %d", backend.rejectCalls)
	}
	if backend.lastDecision.Comment != "missing receipt" {
		t.Fatalf("explicit comment replaced: %q", backend.lastDecision.Comment)
	}
}

func TestApprovalsPage_DecisionFailureKeepsList(t *testing.T) {
	backend := newStubBackend()
	backend.spends = []domain.Spend{pendingSpend("sp-1", 120)}
	page := NewApprovalsPage(backend, testLogger(), Actor{ID: "mgr-1", Name: "Dana Cole"})
	if err := page.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	loadsBefore := backend.listSpendsCalls

	backend.decisionErr = errors.New("backend unavailable")
	if err := page.Approve(context.Background(), "sp-1", ""); err == nil {
		t.Fatal("expected error")
	}

	if backend.listSpendsCalls != loadsBefore {
		t.Fatal("failed decision must not trigger a reload")
	}
	if page.Data.Total != 1 {
		t.Fatalf("previous list must stay visible, got total %d", page.Data.Total)
	}
	seen := page.TakeNotices()
	if len(seen) != 1 || seen[0].Level != "error" {
		t.Fatalf("expected one error notice, got %+v", seen)
	}
}
