// Package events carries session changes from the account store to the
// stores that scope their data by account.
package events

import (
	"sync"

	"offertrack/internal/models"
)

// UserChanged is published after every session transition. Account is nil
// when the session ended.
type UserChanged struct {
	Account *models.Account
}

// AccountID returns the new account id, or "" when signed out.
func (e UserChanged) AccountID() string {
	if e.Account == nil {
		return ""
	}
	return e.Account.ID
}

type subscription struct {
	id int
	fn func(UserChanged)
}

// Bus delivers UserChanged events synchronously, in subscription order.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn func(UserChanged)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subs = append(b.subs, subscription{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish calls every subscriber with e. Each subscriber gets its own copy
// of the account.
func (b *Bus) Publish(e UserChanged) {
	b.mu.Lock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, s := range subs {
		ev := e
		if e.Account != nil {
			acct := *e.Account
			ev.Account = &acct
		}
		s.fn(ev)
	}
}
