// Package notifications keeps a capped, per-account log of informational
// events and mirrors each new entry to a transient display.
package notifications

import (
	"fmt"
	"log/slog"

	"offertrack/internal/events"
	"offertrack/internal/models"
	"offertrack/internal/storage"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// MaxEntries is the number of entries kept per account.
const MaxEntries = 50

// Display shows a notification briefly, outside the log.
type Display interface {
	Show(n models.Notification)
}

// Store is the notification log of the signed-in account.
type Store struct {
	kv      storage.KV
	display Display
	clock   clockwork.Clock

	account *models.Account
	entries []models.Notification
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for timestamps.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Store) { s.clock = clock }
}

// NewStore creates a Store that reloads the log whenever the session changes.
// display may be nil.
func NewStore(kv storage.KV, bus *events.Bus, display Display, opts ...Option) *Store {
	s := &Store{
		kv:      kv,
		display: display,
		clock:   clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}

	bus.Subscribe(func(e events.UserChanged) {
		if err := s.load(e.Account); err != nil {
			slog.Error("failed to load notifications", "account_id", e.AccountID(), "error", err)
		}
	})
	return s
}

func (s *Store) load(account *models.Account) error {
	if account == nil {
		s.account, s.entries = nil, nil
		return nil
	}

	acct := *account
	if acct.Ephemeral {
		s.account, s.entries = &acct, nil
		return nil
	}

	entries, _, err := storage.LoadList[models.Notification](s.kv, storage.NotificationsKey(acct.ID))
	if err != nil {
		return fmt.Errorf("load notifications: %w", err)
	}
	s.account, s.entries = &acct, entries
	return nil
}

// Add records a new unread entry at the head of the log and shows it.
// Without a signed-in account it does nothing and returns nil.
func (s *Store) Add(kind models.Kind, title, description string) (*models.Notification, error) {
	if s.account == nil {
		return nil, nil
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: notification kind %q", models.ErrInvalidInput, kind)
	}

	n := models.Notification{
		ID:          uuid.NewString(),
		Kind:        kind,
		Title:       title,
		Description: description,
		Timestamp:   s.clock.Now().UTC(),
	}

	entries := make([]models.Notification, 0, len(s.entries)+1)
	entries = append(entries, n)
	entries = append(entries, s.entries...)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}

	if err := s.commit(entries); err != nil {
		return nil, err
	}
	if s.display != nil {
		s.display.Show(n)
	}
	return &n, nil
}

// MarkAsRead flags one entry as read.
func (s *Store) MarkAsRead(id string) error {
	if s.account == nil {
		return nil
	}
	entries := s.List()
	for i := range entries {
		if entries[i].ID == id {
			entries[i].Read = true
		}
	}
	return s.commit(entries)
}

// MarkAllAsRead flags every entry as read.
func (s *Store) MarkAllAsRead() error {
	if s.account == nil {
		return nil
	}
	entries := s.List()
	for i := range entries {
		entries[i].Read = true
	}
	return s.commit(entries)
}

// Clear removes one entry.
func (s *Store) Clear(id string) error {
	if s.account == nil {
		return nil
	}
	entries := make([]models.Notification, 0, len(s.entries))
	for _, n := range s.entries {
		if n.ID != id {
			entries = append(entries, n)
		}
	}
	return s.commit(entries)
}

// ClearAll empties the log.
func (s *Store) ClearAll() error {
	if s.account == nil {
		return nil
	}
	return s.commit([]models.Notification{})
}

// List returns a copy of the log, newest first.
func (s *Store) List() []models.Notification {
	return append([]models.Notification(nil), s.entries...)
}

// UnreadCount returns the number of unread entries.
func (s *Store) UnreadCount() int {
	count := 0
	for _, n := range s.entries {
		if !n.Read {
			count++
		}
	}
	return count
}

func (s *Store) commit(entries []models.Notification) error {
	if !s.account.Ephemeral {
		if err := storage.SaveList(s.kv, storage.NotificationsKey(s.account.ID), entries); err != nil {
			return fmt.Errorf("save notifications: %w", err)
		}
	}
	s.entries = entries
	return nil
}
