package models

import (
	"fmt"
	"time"
)

// Kind is the severity of a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// Valid reports whether k is one of the four known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindSuccess, KindError, KindInfo, KindWarning:
		return true
	}
	return false
}

// Notification is an entry of an account's notification log.
type Notification struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Read        bool      `json:"read"`
}

// Validate checks a persisted notification record.
func (n Notification) Validate() error {
	if n.ID == "" {
		return fmt.Errorf("%w: notification id is empty", ErrInvalidInput)
	}
	if !n.Kind.Valid() {
		return fmt.Errorf("%w: notification %s has kind %q", ErrInvalidInput, n.ID, n.Kind)
	}
	if n.Timestamp.IsZero() {
		return fmt.Errorf("%w: notification %s has no timestamp", ErrInvalidInput, n.ID)
	}
	return nil
}
