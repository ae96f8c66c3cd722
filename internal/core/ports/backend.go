package ports

import (
	"context"
	"io"

	"github.com/spendflow/spend-console/internal/core/domain"
)

// Page is the backend's pagination envelope.
type Page[T any] struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Items  []T `json:"items"`
}

// ListSpendsInput carries the filter and pagination state of a spends list view.
type ListSpendsInput struct {
	Status string
	Page   int
	Limit  int
}

// CreateSpendInput is the payload for spend creation. ReceiptURL stays empty
// when the submission carries no attachment and is then omitted from the wire.
type CreateSpendInput struct {
	Amount      float64
	Currency    string
	Category    string
	Description string
	SpendDate   string
	Source      string
	ReceiptURL  string
}

// DecisionInput identifies the spend and the acting approver for an
// approve/reject call. ActorID and ActorName are required, Comment optional.
type DecisionInput struct {
	SpendID   string
	ActorID   string
	ActorName string
	Comment   string
}

// CreatePolicyInput is the payload for policy creation. Rules round-trip as
// opaque JSON.
type CreatePolicyInput struct {
	Name        string
	Description string
	Active      bool
	Rules       []domain.PolicyRule
	CreatedBy   string
}

// ListNotificationsInput carries notification list filters.
type ListNotificationsInput struct {
	Page       int
	PageSize   int
	UnreadOnly bool
}

// ListAuditLogsInput carries audit log filters.
type ListAuditLogsInput struct {
	Page       int
	PageSize   int
	Action     string
	EntityType string
}

// Backend is the typed surface of the SpendFlow REST API. Implementations
// issue exactly one HTTP request per call, with no retry, caching, or
// deduplication; errors propagate directly to the caller.
type Backend interface {
	GetMe(ctx context.Context) (*domain.User, error)

	ListSpends(ctx context.Context, in ListSpendsInput) (*Page[domain.Spend], error)
	GetSpend(ctx context.Context, id string) (*domain.Spend, error)
	CreateSpend(ctx context.Context, in CreateSpendInput) (*domain.Spend, error)
	UploadReceipt(ctx context.Context, spendID, filename string, content io.Reader) (string, error)

	Approve(ctx context.Context, in DecisionInput) (*domain.Spend, error)
	Reject(ctx context.Context, in DecisionInput) (*domain.Spend, error)

	ListPolicies(ctx context.Context) ([]domain.Policy, error)
	CreatePolicy(ctx context.Context, in CreatePolicyInput) (*domain.Policy, error)
	TogglePolicy(ctx context.Context, id string) (*domain.Policy, error)
	DeletePolicy(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]domain.Category, error)

	ListNotifications(ctx context.Context, in ListNotificationsInput) (*Page[domain.Notification], error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) error

	ListAuditLogs(ctx context.Context, in ListAuditLogsInput) (*Page[domain.AuditLogEntry], error)
}
