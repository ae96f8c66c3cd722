package domain

import (
	"encoding/json"
	"errors"
	"time"
)

var ErrPolicyNotFound = errors.New("policy not found")

// PolicyRule is a single condition/action pair. Both sides are opaque JSON:
// the console displays and round-trips them, evaluation happens server-side.
type PolicyRule struct {
	ID        string          `json:"id,omitempty"`
	Condition json.RawMessage `json:"condition"`
	Action    json.RawMessage `json:"action"`
	Priority  int             `json:"priority,omitempty"`
}

// Policy is a named, toggleable rule set evaluated by the backend against spends.
type Policy struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Active      bool         `json:"active"`
	Rules       []PolicyRule `json:"rules,omitempty"`
	CreatedBy   string       `json:"created_by,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}
