package pages

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/spendflow/spend-console/internal/core/domain"
	"github.com/spendflow/spend-console/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub backend
// ---------------------------------------------------------------------------

type stubBackend struct {
	spends        []domain.Spend
	policies      []domain.Policy
	notifications []domain.Notification
	categories    []domain.Category
	audit         []domain.AuditLogEntry
	me            *domain.User

	// call counters
	listSpendsCalls   int
	createSpendCalls  int
	approveCalls      int
	rejectCalls       int
	togglePolicyCalls int
	markAllReadCalls  int

	// captured inputs
	lastListSpends  ports.ListSpendsInput
	lastCreateSpend ports.CreateSpendInput
	lastDecision    ports.DecisionInput
	lastMarkAllUser string

	// error knobs
	listErr     error
	createErr   error
	decisionErr error
	toggleErr   error
}

func newStubBackend() *stubBackend {
	return &stubBackend{}
}

func (b *stubBackend) GetMe(_ context.Context) (*domain.User, error) {
	if b.me == nil {
		return nil, domain.ErrNotAuthenticated
	}
	clone := *b.me
	return &clone, nil
}

// ListSpends applies the same status filter and pagination the real backend
// does, which is what makes post-decision reloads meaningful in tests.
func (b *stubBackend) ListSpends(_ context.Context, in ports.ListSpendsInput) (*ports.Page[domain.Spend], error) {
	b.listSpendsCalls++
	b.lastListSpends = in
	if b.listErr != nil {
		return nil, b.listErr
	}

	var matched []domain.Spend
	for _, s := range b.spends {
		if in.Status != "" && string(s.Status) != in.Status {
			continue
		}
		matched = append(matched, s)
	}
	total := len(matched)
	limit := in.Limit
	if limit <= 0 {
		limit = 10
	}
	page := in.Page
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return &ports.Page[domain.Spend]{Total: total, Limit: limit, Offset: start, Items: matched[start:end]}, nil
}

func (b *stubBackend) GetSpend(_ context.Context, id string) (*domain.Spend, error) {
	for i := range b.spends {
		if b.spends[i].ID == id {
			clone := b.spends[i]
			return &clone, nil
		}
	}
	return nil, domain.ErrSpendNotFound
}

func (b *stubBackend) CreateSpend(_ context.Context, in ports.CreateSpendInput) (*domain.Spend, error) {
	b.createSpendCalls++
	b.lastCreateSpend = in
	if b.createErr != nil {
		return nil, b.createErr
	}
	s := domain.Spend{
		ID:          "spend-" + strconv.Itoa(len(b.spends)+1),
		Amount:      in.Amount,
		Currency:    in.Currency,
		Category:    in.Category,
		Description: in.Description,
		Status:      domain.StatusPending,
		ReceiptURL:  in.ReceiptURL,
	}
	b.spends = append(b.spends, s)
	return &s, nil
}

func (b *stubBackend) UploadReceipt(_ context.Context, _, _ string, _ io.Reader) (string, error) {
	return "", domain.ErrUploadFailed
}

func (b *stubBackend) Approve(_ context.Context, in ports.DecisionInput) (*domain.Spend, error) {
	b.approveCalls++
	return b.decide(in, domain.StatusApproved)
}

func (b *stubBackend) Reject(_ context.Context, in ports.DecisionInput) (*domain.Spend, error) {
	b.rejectCalls++
	return b.decide(in, domain.StatusRejected)
}

func (b *stubBackend) decide(in ports.DecisionInput, next domain.SpendStatus) (*domain.Spend, error) {
	b.lastDecision = in
	if b.decisionErr != nil {
		return nil, b.decisionErr
	}
	for i := range b.spends {
		if b.spends[i].ID == in.SpendID {
			b.spends[i].Status = next
			clone := b.spends[i]
			return &clone, nil
		}
	}
	return nil, domain.ErrSpendNotFound
}

func (b *stubBackend) ListPolicies(_ context.Context) ([]domain.Policy, error) {
	if b.listErr != nil {
		return nil, b.listErr
	}
	out := make([]domain.Policy, len(b.policies))
	copy(out, b.policies)
	return out, nil
}

func (b *stubBackend) CreatePolicy(_ context.Context, in ports.CreatePolicyInput) (*domain.Policy, error) {
	if b.createErr != nil {
		return nil, b.createErr
	}
	p := domain.Policy{
		ID:          fmt.Sprintf("policy-%d", len(b.policies)+1),
		Name:        in.Name,
		Description: in.Description,
		Active:      in.Active,
		Rules:       in.Rules,
		CreatedBy:   in.CreatedBy,
	}
	b.policies = append(b.policies, p)
	return &p, nil
}

func (b *stubBackend) TogglePolicy(_ context.Context, id string) (*domain.Policy, error) {
	b.togglePolicyCalls++
	if b.toggleErr != nil {
		return nil, b.toggleErr
	}
	for i := range b.policies {
		if b.policies[i].ID == id {
			b.policies[i].Active = !b.policies[i].Active
			clone := b.policies[i]
			return &clone, nil
		}
	}
	return nil, domain.ErrPolicyNotFound
}

func (b *stubBackend) DeletePolicy(_ context.Context, id string) error {
	for i := range b.policies {
		if b.policies[i].ID == id {
			b.policies = append(b.policies[:i], b.policies[i+1:]...)
			return nil
		}
	}
	return domain.ErrPolicyNotFound
}

func (b *stubBackend) ListCategories(_ context.Context) ([]domain.Category, error) {
	if b.listErr != nil {
		return nil, b.listErr
	}
	out := make([]domain.Category, len(b.categories))
	copy(out, b.categories)
	return out, nil
}

func (b *stubBackend) ListNotifications(_ context.Context, in ports.ListNotificationsInput) (*ports.Page[domain.Notification], error) {
	if b.listErr != nil {
		return nil, b.listErr
	}
	var matched []domain.Notification
	for _, n := range b.notifications {
		if in.UnreadOnly && n.Read {
			continue
		}
		matched = append(matched, n)
	}
	return &ports.Page[domain.Notification]{Total: len(matched), Limit: in.PageSize, Items: matched}, nil
}

func (b *stubBackend) MarkNotificationRead(_ context.Context, id string) error {
	for i := range b.notifications {
		if b.notifications[i].ID == id {
			b.notifications[i].Read = true
			return nil
		}
	}
	return domain.ErrSpendNotFound
}

func (b *stubBackend) MarkAllNotificationsRead(_ context.Context, userID string) error {
	b.markAllReadCalls++
	b.lastMarkAllUser = userID
	for i := range b.notifications {
		b.notifications[i].Read = true
	}
	return nil
}

func (b *stubBackend) ListAuditLogs(_ context.Context, in ports.ListAuditLogsInput) (*ports.Page[domain.AuditLogEntry], error) {
	if b.listErr != nil {
		return nil, b.listErr
	}
	var matched []domain.AuditLogEntry
	for _, e := range b.audit {
		if in.Action != "" && e.Action != in.Action {
			continue
		}
		if in.EntityType != "" && e.EntityType != in.EntityType {
			continue
		}
		matched = append(matched, e)
	}
	return &ports.Page[domain.AuditLogEntry]{Total: len(matched), Limit: in.PageSize, Items: matched}, nil
}

// ---------------------------------------------------------------------------
// Shared helpers
// ---------------------------------------------------------------------------

type stubUploader struct {
	url     string
	err     error
	calls   int
	lastKey string
}

func (u *stubUploader) Upload(_ context.Context, filename string, _ io.Reader) (string, error) {
	u.calls++
	u.lastKey = filename
	if u.err != nil {
		return "", u.err
	}
	return u.url, nil
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
