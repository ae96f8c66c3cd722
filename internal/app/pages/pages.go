// Package pages holds the per-route view controllers. Every controller
// follows the same contract: Load replaces its data wholesale on success; on
// failure it records a transient notice and keeps the previous data visible;
// mutations are pessimistic (wait, then reload) except the single documented
// optimistic case, the policy toggle.
package pages

import (
	"github.com/spendflow/spend-console/internal/api/metrics"
)

// Notice is a transient toast-style message surfaced to the user. No failure
// carried by a Notice is fatal; the page keeps rendering its last good state.
type Notice struct {
	Level   string // "error" or "success"
	Message string
}

// notices is a drainable queue of transient messages, embedded by every
// controller.
type notices struct {
	pending []Notice
}

func (n *notices) notifyError(msg string)   { n.pending = append(n.pending, Notice{Level: "error", Message: msg}) }
func (n *notices) notifySuccess(msg string) { n.pending = append(n.pending, Notice{Level: "success", Message: msg}) }

// TakeNotices drains and returns the pending notices, oldest first.
func (n *notices) TakeNotices() []Notice {
	out := n.pending
	n.pending = nil
	return out
}

func recordLoad(page string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.PageLoadsTotal.WithLabelValues(page, result).Inc()
}
