package pages

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/spendflow/spend-console/internal/core/domain"
	"github.com/spendflow/spend-console/internal/core/ports"
)

const defaultPageSize = 10

// SpendsPage is the "My Spends" list view: one page of the user's spends,
// filterable by status.
type SpendsPage struct {
	notices
	backend ports.Backend
	log     zerolog.Logger

	Status  string
	Page    int
	Limit   int
	Loading bool
	Data    *ports.Page[domain.Spend]
}

func NewSpendsPage(b ports.Backend, log zerolog.Logger) *SpendsPage {
	return &SpendsPage{backend: b, log: log, Page: 1, Limit: defaultPageSize}
}

// Load fetches the current page. On success the data is replaced wholesale;
// on failure the previous page stays visible and a notice is queued.
func (p *SpendsPage) Load(ctx context.Context) error {
	p.Loading = true
	defer func() { p.Loading = false }()

	data, err := p.backend.ListSpends(ctx, ports.ListSpendsInput{
		Status: p.Status,
		Page:   p.Page,
		Limit:  p.Limit,
	})
	recordLoad("spends", err)
	if err != nil {
		p.log.Warn().Err(err).Msg("spends load failed")
		p.notifyError("Could not load spends: " + err.Error())
		return err
	}
	p.Data = data
	return nil
}

// SpendDetailPage is the single-spend view, including approval history.
type SpendDetailPage struct {
	notices
	backend ports.Backend
	log     zerolog.Logger

	ID       string
	Loading  bool
	NotFound bool
	Spend    *domain.Spend
}

func NewSpendDetailPage(b ports.Backend, log zerolog.Logger, id string) *SpendDetailPage {
	return &SpendDetailPage{backend: b, log: log, ID: id}
}

// Load fetches the spend. A missing id renders the not-found view rather
// than an error notice.
func (p *SpendDetailPage) Load(ctx context.Context) error {
	p.Loading = true
	defer func() { p.Loading = false }()

	spend, err := p.backend.GetSpend(ctx, p.ID)
	recordLoad("spend_detail", err)
	if err != nil {
		if errors.Is(err, domain.ErrSpendNotFound) {
			p.NotFound = true
			return nil
		}
		p.log.Warn().Err(err).Str("spend_id", p.ID).Msg("spend detail load failed")
		p.notifyError("Could not load spend: " + err.Error())
		return err
	}
	p.Spend = spend
	return nil
}
