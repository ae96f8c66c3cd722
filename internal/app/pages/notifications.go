package pages

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/spendflow/spend-console/internal/api/metrics"
	"github.com/spendflow/spend-console/internal/core/domain"
	"github.com/spendflow/spend-console/internal/core/ports"
)

// DefaultNotificationsPollInterval matches the original page's refresh timer.
const DefaultNotificationsPollInterval = 30 * time.Second

// NotificationsPage is the notifications list view. Like every controller it
// is owned by a single goroutine; the poll loop is that owner while it runs.
type NotificationsPage struct {
	notices
	backend ports.Backend
	log     zerolog.Logger
	userID  string

	Page     int
	PageSize int
	Loading  bool
	Data     *ports.Page[domain.Notification]
}

func NewNotificationsPage(b ports.Backend, log zerolog.Logger, userID string) *NotificationsPage {
	return &NotificationsPage{backend: b, log: log, userID: userID, Page: 1, PageSize: 20}
}

// Load fetches the current page, replacing the data wholesale. Each tick of
// the poll loop issues a fresh request and the last response to land wins.
func (p *NotificationsPage) Load(ctx context.Context) error {
	p.Loading = true
	defer func() { p.Loading = false }()

	data, err := p.backend.ListNotifications(ctx, ports.ListNotificationsInput{
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	recordLoad("notifications", err)
	if err != nil {
		p.log.Warn().Err(err).Msg("notifications load failed")
		p.notifyError("Could not load notifications: " + err.Error())
		return err
	}
	p.Data = data
	return nil
}

// Empty reports whether the page has loaded and holds no items, driving the
// empty-state view instead of a bare list.
func (p *NotificationsPage) Empty() bool {
	return p.Data != nil && p.Data.Total == 0
}

// UnreadCount counts unread items in the loaded page.
func (p *NotificationsPage) UnreadCount() int {
	if p.Data == nil {
		return 0
	}
	n := 0
	for _, item := range p.Data.Items {
		if !item.Read {
			n++
		}
	}
	return n
}

// MarkRead marks one notification read, then reloads.
func (p *NotificationsPage) MarkRead(ctx context.Context, id string) error {
	if err := p.backend.MarkNotificationRead(ctx, id); err != nil {
		p.log.Warn().Err(err).Str("notification_id", id).Msg("mark read failed")
		p.notifyError("Could not update notification")
		return err
	}
	p.Load(ctx)
	return nil
}

// MarkAllRead marks everything read for the session user. It short-circuits
// when the loaded page shows nothing unread.
func (p *NotificationsPage) MarkAllRead(ctx context.Context) error {
	if p.UnreadCount() == 0 {
		return nil
	}
	if err := p.backend.MarkAllNotificationsRead(ctx, p.userID); err != nil {
		p.log.Warn().Err(err).Msg("mark all read failed")
		p.notifyError("Could not update notifications")
		return err
	}
	p.notifySuccess("All notifications marked as read")
	p.Load(ctx)
	return nil
}

// Poll reloads immediately and then on every tick until ctx is cancelled.
// Cancellation is the only teardown: an in-flight request is not aborted,
// it just resolves into a page nobody renders again. onTick, when non-nil,
// runs after each reload.
func (p *NotificationsPage) Poll(ctx context.Context, interval time.Duration, onTick func()) {
	if interval <= 0 {
		interval = DefaultNotificationsPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	tick := func() {
		result := "ok"
		if err := p.Load(ctx); err != nil {
			result = "error"
		}
		metrics.PollTicksTotal.WithLabelValues("notifications", result).Inc()
		if onTick != nil {
			onTick()
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
