package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spendflow/spend-console/internal/app/pages"
	"github.com/spendflow/spend-console/internal/app/shell"
)

// Notifications renders the notification list.
func (h *Console) Notifications(c echo.Context) error {
	sess, backend, err := h.bind(c)
	if err != nil {
		return err
	}
	page := pages.NewNotificationsPage(backend, h.log, sess.User.ID)
	page.Load(c.Request().Context())
	return h.renderPage(c, http.StatusOK, "notifications.html", "Notifications", sess, backend, page.TakeNotices(), page)
}

// NotificationRead marks one notification read and re-renders the list.
func (h *Console) NotificationRead(c echo.Context) error {
	sess, backend, err := h.bind(c)
	if err != nil {
		return err
	}
	page := pages.NewNotificationsPage(backend, h.log, sess.User.ID)
	page.MarkRead(c.Request().Context(), c.Param("id"))
	return h.renderPage(c, http.StatusOK, "notifications.html", "Notifications", sess, backend, page.TakeNotices(), page)
}

// NotificationReadAll marks everything read for the session user.
func (h *Console) NotificationReadAll(c echo.Context) error {
	sess, backend, err := h.bind(c)
	if err != nil {
		return err
	}
	page := pages.NewNotificationsPage(backend, h.log, sess.User.ID)
	page.Load(c.Request().Context())
	page.MarkAllRead(c.Request().Context())
	return h.renderPage(c, http.StatusOK, "notifications.html", "Notifications", sess, backend, page.TakeNotices(), page)
}

type unreadCountResponse struct {
	Count   int    `json:"count"`
	Display string `json:"display"`
}

// UnreadCount is the JSON endpoint behind the header badge.
func (h *Console) UnreadCount(c echo.Context) error {
	_, backend, err := h.bind(c)
	if err != nil {
		return err
	}
	badge := shell.NewUnreadBadge(backend, h.log)
	if err := badge.Load(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, unreadCountResponse{Count: badge.Count, Display: badge.Display()})
}

// UnreadStream pushes badge updates over SSE. The watch loop ends when the
// client disconnects; that cancellation is the only teardown.
func (h *Console) UnreadStream(c echo.Context) error {
	_, backend, err := h.bind(c)
	if err != nil {
		return err
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)

	badge := shell.NewUnreadBadge(backend, h.log)
	badge.Watch(c.Request().Context(), h.poll.UnreadBadge, func(count int) {
		payload, err := json.Marshal(unreadCountResponse{Count: count, Display: badge.Display()})
		if err != nil {
			return
		}
		fmt.Fprintf(res, "data: %s\n\n", payload)
		res.Flush()
	})
	return nil
}

type notificationsFeedFrame struct {
	Total  int `json:"total"`
	Unread int `json:"unread"`
}

// NotificationsStream keeps the notification list fresh over SSE, reloading
// on the configured cadence until the client disconnects.
func (h *Console) NotificationsStream(c echo.Context) error {
	sess, backend, err := h.bind(c)
	if err != nil {
		return err
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)

	page := pages.NewNotificationsPage(backend, h.log, sess.User.ID)
	page.Poll(c.Request().Context(), h.poll.Notifications, func() {
		frame := notificationsFeedFrame{Unread: page.UnreadCount()}
		if page.Data != nil {
			frame.Total = page.Data.Total
		}
		payload, err := json.Marshal(frame)
		if err != nil {
			return
		}
		fmt.Fprintf(res, "data: %s\n\n", payload)
		res.Flush()
	})
	return nil
}
