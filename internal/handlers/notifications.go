package handlers

import (
	"fmt"

	"offertrack/internal/models"
)

// NotificationItem is a log entry prepared for display.
type NotificationItem struct {
	models.Notification
	Marker string
	Time   string
}

// NotificationsViewModel is the data passed to the notifications view.
type NotificationsViewModel struct {
	Unread int
	Items  []NotificationItem
}

// ListNotifications renders the log, newest first. Unread entries are
// marked with an asterisk.
func (h *Handlers) ListNotifications() error {
	if _, err := h.requireSession(); err != nil {
		return err
	}

	entries := h.notes.List()
	items := make([]NotificationItem, 0, len(entries))
	for _, n := range entries {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		items = append(items, NotificationItem{
			Notification: n,
			Marker:       marker,
			Time:         n.Timestamp.Local().Format("2006-01-02 15:04"),
		})
	}
	return h.render("notifications", NotificationsViewModel{Unread: h.notes.UnreadCount(), Items: items})
}

// MarkNotificationRead flags one entry as read.
func (h *Handlers) MarkNotificationRead(id string) error {
	if err := h.requireNotification(id); err != nil {
		return err
	}
	return h.notes.MarkAsRead(id)
}

// MarkAllNotificationsRead flags every entry as read.
func (h *Handlers) MarkAllNotificationsRead() error {
	if _, err := h.requireSession(); err != nil {
		return err
	}
	if err := h.notes.MarkAllAsRead(); err != nil {
		return err
	}
	fmt.Fprintln(h.out, "All notifications marked as read")
	return nil
}

// ClearNotification removes one entry.
func (h *Handlers) ClearNotification(id string) error {
	if err := h.requireNotification(id); err != nil {
		return err
	}
	return h.notes.Clear(id)
}

// ClearAllNotifications empties the log.
func (h *Handlers) ClearAllNotifications() error {
	if _, err := h.requireSession(); err != nil {
		return err
	}
	if err := h.notes.ClearAll(); err != nil {
		return err
	}
	fmt.Fprintln(h.out, "Notifications cleared")
	return nil
}

func (h *Handlers) requireNotification(id string) error {
	if _, err := h.requireSession(); err != nil {
		return err
	}
	for _, n := range h.notes.List() {
		if n.ID == id {
			return nil
		}
	}
	return fmt.Errorf("notification %q: %w", id, models.ErrNotFound)
}
