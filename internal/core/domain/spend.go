package domain

import (
	"errors"
	"time"
)

// SpendStatus represents the lifecycle state of a spend as reported by the
// backend. The console never computes transitions itself; it only requests
// them and reflects whatever the backend returns.
type SpendStatus string

const (
	StatusDraft    SpendStatus = "draft"
	StatusPending  SpendStatus = "pending"
	StatusApproved SpendStatus = "approved"
	StatusRejected SpendStatus = "rejected"
	StatusBlocked  SpendStatus = "blocked"
)

// requestableTransitions lists the only transitions the console ever asks the
// backend to perform. Everything else can only be observed after a reload.
var requestableTransitions = map[SpendStatus][]SpendStatus{
	StatusPending: {StatusApproved, StatusRejected},
}

var ErrSpendNotFound = errors.New("spend not found")
var ErrNotAuthenticated = errors.New("not authenticated")
var ErrForbidden = errors.New("access forbidden")
var ErrUploadFailed = errors.New("receipt upload failed")

// CanRequestTransition reports whether the console is allowed to ask the
// backend for a transition from the current status to next.
func (s SpendStatus) CanRequestTransition(next SpendStatus) bool {
	for _, allowed := range requestableTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Known reports whether the status is one of the fixed enumeration values.
func (s SpendStatus) Known() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected, StatusBlocked:
		return true
	}
	return false
}

// ApprovalEntry records a single decision taken on a spend, as returned by
// the backend inside the spend's approval history.
type ApprovalEntry struct {
	Status    SpendStatus `json:"status"`
	ActorID   string      `json:"actor_id"`
	ActorName string      `json:"actor_name"`
	Comment   string      `json:"comment,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// Category is a spend category as served by the backend metadata endpoint.
type Category struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	AccountingCode string `json:"accounting_code,omitempty"`
	OrganizationID string `json:"organization_id"`
}

// Spend is a single expense record submitted for reimbursement or tracking.
type Spend struct {
	ID              string          `json:"id"`
	Amount          float64         `json:"amount"`
	Currency        string          `json:"currency"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	Status          SpendStatus     `json:"status"`
	UserID          string          `json:"user_id"`
	UserName        string          `json:"user_name,omitempty"`
	OrganizationID  string          `json:"organization_id,omitempty"`
	ReceiptURL      string          `json:"receipt_url,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	ApprovalHistory []ApprovalEntry `json:"approval_history,omitempty"`
}
