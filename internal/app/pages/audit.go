package pages

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/spendflow/spend-console/internal/core/domain"
	"github.com/spendflow/spend-console/internal/core/ports"
)

// AuditPage is the read-only, paginated audit log view.
type AuditPage struct {
	notices
	backend ports.Backend
	log     zerolog.Logger

	Action     string
	EntityType string
	Page       int
	PageSize   int
	Loading    bool
	Data       *ports.Page[domain.AuditLogEntry]
}

func NewAuditPage(b ports.Backend, log zerolog.Logger) *AuditPage {
	return &AuditPage{backend: b, log: log, Page: 1, PageSize: 25}
}

// Load fetches the current filter page.
func (p *AuditPage) Load(ctx context.Context) error {
	p.Loading = true
	defer func() { p.Loading = false }()

	data, err := p.backend.ListAuditLogs(ctx, ports.ListAuditLogsInput{
		Page:       p.Page,
		PageSize:   p.PageSize,
		Action:     p.Action,
		EntityType: p.EntityType,
	})
	recordLoad("audit", err)
	if err != nil {
		p.log.Warn().Err(err).Msg("audit load failed")
		p.notifyError("Could not load audit logs: " + err.Error())
		return err
	}
	p.Data = data
	return nil
}
