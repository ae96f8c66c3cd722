package pages

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/spendflow/spend-console/internal/core/domain"
	"github.com/spendflow/spend-console/internal/core/ports"
)

const dashboardPageSize = 5

// DashboardStats are computed from the loaded page only; nothing is
// aggregated server-side on the console's behalf.
type DashboardStats struct {
	TotalValue    float64
	PendingCount  int
	ApprovedCount int
	RejectedCount int
}

// DashboardPage shows approvers their pending queue and everyone else their
// recent spends, with summary stats and one-click decisions for approvers.
type DashboardPage struct {
	notices
	backend  ports.Backend
	log      zerolog.Logger
	actor    Actor
	approver bool

	Loading bool
	Data    *ports.Page[domain.Spend]
	Stats   DashboardStats
}

func NewDashboardPage(b ports.Backend, log zerolog.Logger, actor Actor, approver bool) *DashboardPage {
	return &DashboardPage{backend: b, log: log, actor: actor, approver: approver}
}

// IsApprover reports which variant of the dashboard is shown.
func (p *DashboardPage) IsApprover() bool { return p.approver }

// Load fetches the dashboard slice and recomputes stats from it.
func (p *DashboardPage) Load(ctx context.Context) error {
	p.Loading = true
	defer func() { p.Loading = false }()

	in := ports.ListSpendsInput{Page: 1, Limit: dashboardPageSize}
	if p.approver {
		in.Status = string(domain.StatusPending)
	}
	data, err := p.backend.ListSpends(ctx, in)
	recordLoad("dashboard", err)
	if err != nil {
		p.log.Warn().Err(err).Msg("dashboard load failed")
		p.notifyError("Could not load dashboard: " + err.Error())
		return err
	}

	p.Data = data
	stats := DashboardStats{}
	for _, s := range data.Items {
		stats.TotalValue += s.Amount
		switch s.Status {
		case domain.StatusPending:
			stats.PendingCount++
		case domain.StatusApproved:
			stats.ApprovedCount++
		case domain.StatusRejected:
			stats.RejectedCount++
		}
	}
	p.Stats = stats
	return nil
}

// QuickApprove issues a one-click approval with the default comment, then
// reloads the dashboard slice.
func (p *DashboardPage) QuickApprove(ctx context.Context, spendID string) error {
	return p.quickDecide(ctx, spendID, defaultApproveComment, p.backend.Approve)
}

// QuickReject mirrors QuickApprove for rejections.
func (p *DashboardPage) QuickReject(ctx context.Context, spendID string) error {
	return p.quickDecide(ctx, spendID, defaultRejectComment, p.backend.Reject)
}

func (p *DashboardPage) quickDecide(ctx context.Context, spendID, comment string, call func(context.Context, ports.DecisionInput) (*domain.Spend, error)) error {
	_, err := call(ctx, ports.DecisionInput{
		SpendID:   spendID,
		ActorID:   p.actor.ID,
		ActorName: p.actor.Name,
		Comment:   comment,
	})
	if err != nil {
		p.log.Warn().Err(err).Str("spend_id", spendID).Msg("quick decision failed")
		p.notifyError("Decision failed: " + err.Error())
		return err
	}
	p.Load(ctx)
	return nil
}
