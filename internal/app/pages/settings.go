package pages

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/spendflow/spend-console/internal/core/domain"
	"github.com/spendflow/spend-console/internal/core/ports"
)

// SettingsPage shows the backend profile for the session user alongside the
// organization's category metadata.
type SettingsPage struct {
	notices
	backend ports.Backend
	log     zerolog.Logger

	Loading    bool
	Profile    *domain.User
	Categories []domain.Category
}

func NewSettingsPage(b ports.Backend, log zerolog.Logger) *SettingsPage {
	return &SettingsPage{backend: b, log: log}
}

// Load fetches the profile and category metadata. Either call failing leaves
// the other's previous data visible.
func (p *SettingsPage) Load(ctx context.Context) error {
	p.Loading = true
	defer func() { p.Loading = false }()

	profile, err := p.backend.GetMe(ctx)
	recordLoad("settings", err)
	if err != nil {
		p.log.Warn().Err(err).Msg("profile load failed")
		p.notifyError("Could not load profile: " + err.Error())
		return err
	}
	p.Profile = profile

	cats, err := p.backend.ListCategories(ctx)
	if err != nil {
		p.log.Warn().Err(err).Msg("categories load failed")
		p.notifyError("Could not load categories: " + err.Error())
		return err
	}
	p.Categories = cats
	return nil
}
