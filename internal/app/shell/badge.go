// Package shell holds the layout-shell concerns shared by every
// authenticated page, chiefly the unread-notification badge and its poller.
package shell

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/spendflow/spend-console/internal/api/metrics"
	"github.com/spendflow/spend-console/internal/core/ports"
)

// DefaultBadgePollInterval matches the original layout's refresh timer.
const DefaultBadgePollInterval = 60 * time.Second

// UnreadBadge tracks the unread-notification count shown in the header.
// Owned by a single goroutine; the Watch loop is that owner while it runs.
type UnreadBadge struct {
	backend ports.Backend
	log     zerolog.Logger

	Count int
}

func NewUnreadBadge(b ports.Backend, log zerolog.Logger) *UnreadBadge {
	return &UnreadBadge{backend: b, log: log}
}

// Load refreshes the count. A failure keeps the previous count visible; the
// badge is decoration, not an error surface.
func (b *UnreadBadge) Load(ctx context.Context) error {
	page, err := b.backend.ListNotifications(ctx, ports.ListNotificationsInput{UnreadOnly: true})
	if err != nil {
		b.log.Debug().Err(err).Msg("unread badge refresh failed")
		return err
	}
	b.Count = page.Total
	return nil
}

// Display renders the badge text, clamping anything above nine to "9+".
// An empty string means no badge is drawn.
func (b *UnreadBadge) Display() string {
	switch {
	case b.Count <= 0:
		return ""
	case b.Count > 9:
		return "9+"
	}
	return itoa(b.Count)
}

func itoa(n int) string {
	// counts here are 1..9
	return string(rune('0' + n))
}

// Watch refreshes immediately and then on every tick until ctx is cancelled,
// invoking onChange after each successful refresh. Cancellation on unmount
// is the only teardown; an in-flight refresh is not aborted.
func (b *UnreadBadge) Watch(ctx context.Context, interval time.Duration, onChange func(count int)) {
	if interval <= 0 {
		interval = DefaultBadgePollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	tick := func() {
		if err := b.Load(ctx); err != nil {
			metrics.PollTicksTotal.WithLabelValues("unread_badge", "error").Inc()
			return
		}
		metrics.PollTicksTotal.WithLabelValues("unread_badge", "ok").Inc()
		if onChange != nil {
			onChange(b.Count)
		}
	}

	tick()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tick()
		}
	}
}
