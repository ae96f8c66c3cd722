package pages

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/spendflow/spend-console/internal/core/domain"
	"github.com/spendflow/spend-console/internal/core/ports"
)

// Default comments applied when an approver uses the one-click actions
// without writing anything.
const (
	defaultApproveComment = "Quick Approval"
	defaultRejectComment  = "Quick Rejection"
)

// Actor identifies the approver issuing a decision.
type Actor struct {
	ID   string
	Name string
}

// ApprovalsPage is the pending-queue view for approvers. Decisions are
// pessimistic: the list is reloaded in full after every successful call, and
// the backend's pending filter decides whether the acted-upon spend is gone.
type ApprovalsPage struct {
	notices
	backend ports.Backend
	log     zerolog.Logger
	actor   Actor

	Page    int
	Limit   int
	Loading bool
	Data    *ports.Page[domain.Spend]
}

func NewApprovalsPage(b ports.Backend, log zerolog.Logger, actor Actor) *ApprovalsPage {
	return &ApprovalsPage{backend: b, log: log, actor: actor, Page: 1, Limit: defaultPageSize}
}

// Load fetches the current pending page.
func (p *ApprovalsPage) Load(ctx context.Context) error {
	p.Loading = true
	defer func() { p.Loading = false }()

	data, err := p.backend.ListSpends(ctx, ports.ListSpendsInput{
		Status: string(domain.StatusPending),
		Page:   p.Page,
		Limit:  p.Limit,
	})
	recordLoad("approvals", err)
	if err != nil {
		p.log.Warn().Err(err).Msg("approvals load failed")
		p.notifyError("Could not load approvals: " + err.Error())
		return err
	}
	p.Data = data
	return nil
}

// Approve issues exactly one decision call carrying the approver's id, name,
// and comment (defaulted when empty), then reloads the list.
func (p *ApprovalsPage) Approve(ctx context.Context, spendID, comment string) error {
	if comment == "" {
		comment = defaultApproveComment
	}
	return p.decide(ctx, spendID, comment, p.backend.Approve, "Spend approved")
}

// Reject mirrors Approve for the rejection path.
func (p *ApprovalsPage) Reject(ctx context.Context, spendID, comment string) error {
	if comment == "" {
		comment = defaultRejectComment
	}
	return p.decide(ctx, spendID, comment, p.backend.Reject, "Spend rejected")
}

func (p *ApprovalsPage) decide(ctx context.Context, spendID, comment string, call func(context.Context, ports.DecisionInput) (*domain.Spend, error), successMsg string) error {
	_, err := call(ctx, ports.DecisionInput{
		SpendID:   spendID,
		ActorID:   p.actor.ID,
		ActorName: p.actor.Name,
		Comment:   comment,
	})
	if err != nil {
		p.log.Warn().Err(err).Str("spend_id", spendID).Msg("decision failed")
		p.notifyError("Decision failed: " + err.Error())
		return err
	}
	p.notifySuccess(successMsg)
	p.Load(ctx)
	return nil
}
