package pages

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/spendflow/spend-console/internal/core/domain"
	"github.com/spendflow/spend-console/internal/core/ports"
)

// PolicyForm is the create-policy dialog state. RulesJSON is the raw text of
// the rules editor; only its JSON syntax is checked here, the semantics stay
// opaque to the console.
type PolicyForm struct {
	Name        string
	Description string
	Active      bool
	RulesJSON   string
}

// PoliciesPage lists policies and hosts the only optimistic mutation in the
// console: the active toggle.
type PoliciesPage struct {
	notices
	backend ports.Backend
	log     zerolog.Logger
	userID  string

	Loading  bool
	Policies []domain.Policy
}

func NewPoliciesPage(b ports.Backend, log zerolog.Logger, userID string) *PoliciesPage {
	return &PoliciesPage{backend: b, log: log, userID: userID}
}

// Load fetches all policies.
func (p *PoliciesPage) Load(ctx context.Context) error {
	p.Loading = true
	defer func() { p.Loading = false }()

	policies, err := p.backend.ListPolicies(ctx)
	recordLoad("policies", err)
	if err != nil {
		p.log.Warn().Err(err).Msg("policies load failed")
		p.notifyError("Could not load policy engine")
		return err
	}
	p.Policies = policies
	return nil
}

// Toggle flips a policy's active flag optimistically: the snapshot of the
// pre-click value is taken synchronously before the request goes out, the
// local flag flips immediately, and a failure reverts it from the snapshot.
func (p *PoliciesPage) Toggle(ctx context.Context, id string) error {
	idx := p.indexOf(id)
	if idx < 0 {
		return domain.ErrPolicyNotFound
	}

	original := p.Policies[idx].Active
	p.Policies[idx].Active = !original

	if _, err := p.backend.TogglePolicy(ctx, id); err != nil {
		if again := p.indexOf(id); again >= 0 {
			p.Policies[again].Active = original
		}
		p.log.Warn().Err(err).Str("policy_id", id).Msg("policy toggle failed")
		p.notifyError("Failed to update policy status")
		return err
	}

	if original {
		p.notifySuccess("Policy disabled")
	} else {
		p.notifySuccess("Policy enabled")
	}
	return nil
}

// Create validates the rules text as JSON, submits the policy, and reloads
// the list on success. Invalid JSON never leaves the dialog.
func (p *PoliciesPage) Create(ctx context.Context, form PolicyForm) error {
	var rule domain.PolicyRule
	if err := json.Unmarshal([]byte(form.RulesJSON), &rule); err != nil {
		p.notifyError("Invalid JSON syntax")
		return err
	}

	_, err := p.backend.CreatePolicy(ctx, ports.CreatePolicyInput{
		Name:        form.Name,
		Description: form.Description,
		Active:      form.Active,
		Rules:       []domain.PolicyRule{rule},
		CreatedBy:   p.userID,
	})
	if err != nil {
		p.log.Warn().Err(err).Msg("policy creation failed")
		p.notifyError("Deployment failed")
		return err
	}

	p.notifySuccess("New policy deployed")
	p.Load(ctx)
	return nil
}

// Delete removes a policy pessimistically and reloads.
func (p *PoliciesPage) Delete(ctx context.Context, id string) error {
	if err := p.backend.DeletePolicy(ctx, id); err != nil {
		p.log.Warn().Err(err).Str("policy_id", id).Msg("policy deletion failed")
		p.notifyError("Failed to delete policy")
		return err
	}
	p.notifySuccess("Policy deleted")
	p.Load(ctx)
	return nil
}

func (p *PoliciesPage) indexOf(id string) int {
	for i := range p.Policies {
		if p.Policies[i].ID == id {
			return i
		}
	}
	return -1
}
