// Package accounts owns the registered-accounts list and the single
// current-session pointer.
package accounts

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"offertrack/internal/auth"
	"offertrack/internal/events"
	"offertrack/internal/models"
	"offertrack/internal/storage"

	"github.com/jonboulle/clockwork"
)

// Store registers accounts, authenticates logins and tracks the session.
type Store struct {
	kv       storage.KV
	bus      *events.Bus
	clock    clockwork.Clock
	hashCost int
	current  *models.Account
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used to derive account ids.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Store) { s.clock = clock }
}

// WithHashCost sets the bcrypt cost for new secrets.
func WithHashCost(cost int) Option {
	return func(s *Store) { s.hashCost = cost }
}

// NewStore creates a Store and restores the last persisted session.
func NewStore(kv storage.KV, bus *events.Bus, opts ...Option) (*Store, error) {
	s := &Store{
		kv:       kv,
		bus:      bus,
		clock:    clockwork.NewRealClock(),
		hashCost: auth.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}

	acct, ok, err := storage.LoadValue[models.Account](kv, storage.SessionKey)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if ok {
		s.current = models.RestoreAccount(acct)
		slog.Debug("session restored", "account_id", s.current.ID)
	}
	return s, nil
}

// Current returns a copy of the signed-in account, or nil.
func (s *Store) Current() *models.Account {
	if s.current == nil {
		return nil
	}
	acct := *s.current
	return &acct
}

// IsAuthenticated reports whether a session is active.
func (s *Store) IsAuthenticated() bool {
	return s.current != nil
}

// Announce publishes the current session so stores created after the
// session was restored can load their slice.
func (s *Store) Announce() {
	s.bus.Publish(events.UserChanged{Account: s.Current()})
}

// Authenticate signs in with email and secret.
func (s *Store) Authenticate(email, secret string) (*models.Account, error) {
	if models.IsDemoCredentials(email, secret) {
		acct := models.DemoAccount()
		// Demo data is never kept; drop anything a previous version wrote.
		if err := s.kv.Delete(storage.AccountKeys(acct.ID)...); err != nil {
			return nil, fmt.Errorf("reset demo data: %w", err)
		}
		if err := s.setSession(acct); err != nil {
			return nil, err
		}
		return s.Current(), nil
	}

	list, err := s.loadAccounts()
	if err != nil {
		return nil, err
	}
	for _, sa := range list {
		if sa.Email == email && auth.CheckSecret(secret, sa.Secret) {
			if err := s.setSession(sa.Account()); err != nil {
				return nil, err
			}
			return s.Current(), nil
		}
	}
	return nil, models.ErrInvalidCredentials
}

// Register creates an account and signs it in.
func (s *Store) Register(name, email, secret string) (*models.Account, error) {
	if email == models.DemoEmail {
		return nil, models.ErrReservedEmail
	}

	list, err := s.loadAccounts()
	if err != nil {
		return nil, err
	}
	for _, sa := range list {
		if sa.Email == email {
			return nil, models.ErrDuplicateEmail
		}
	}

	hash, err := auth.HashSecret(secret, s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash secret: %w", err)
	}

	entry := models.StoredAccount{
		ID:     s.nextID(list),
		Name:   name,
		Email:  email,
		Secret: hash,
	}
	restore, err := s.snapshot(storage.AccountsKey)
	if err != nil {
		return nil, err
	}
	list = append(list, entry)
	if err := storage.SaveList(s.kv, storage.AccountsKey, list); err != nil {
		return nil, fmt.Errorf("save accounts: %w", err)
	}

	if err := s.setSession(entry.Account()); err != nil {
		return nil, errors.Join(err, restore())
	}
	slog.Info("account registered", "account_id", entry.ID)
	return s.Current(), nil
}

// EndSession signs out. Account data is kept.
func (s *Store) EndSession() error {
	if err := s.kv.Delete(storage.SessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.current = nil
	s.bus.Publish(events.UserChanged{})
	return nil
}

// RenameCurrent changes the display name of the signed-in account.
func (s *Store) RenameCurrent(name string) error {
	if s.current == nil {
		return models.ErrNoSession
	}
	if s.current.Ephemeral {
		return models.ErrImmutableAccount
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", models.ErrInvalidInput)
	}

	list, err := s.loadAccounts()
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID == s.current.ID {
			list[i].Name = name
		}
	}

	renamed := s.Current()
	renamed.Name = name
	restore, err := s.snapshot(storage.SessionKey)
	if err != nil {
		return err
	}
	if err := storage.SaveValue(s.kv, storage.SessionKey, renamed); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := storage.SaveList(s.kv, storage.AccountsKey, list); err != nil {
		return errors.Join(fmt.Errorf("save accounts: %w", err), restore())
	}
	s.current = renamed
	return nil
}

// DeleteCurrent forgets the signed-in account and every slice it owns,
// then ends the session.
func (s *Store) DeleteCurrent() error {
	if s.current == nil {
		return models.ErrNoSession
	}
	if s.current.Ephemeral {
		return models.ErrImmutableAccount
	}

	list, err := s.loadAccounts()
	if err != nil {
		return err
	}
	kept := list[:0]
	for _, sa := range list {
		if sa.ID != s.current.ID {
			kept = append(kept, sa)
		}
	}

	if err := s.kv.Delete(storage.AccountKeys(s.current.ID)...); err != nil {
		return fmt.Errorf("delete account data: %w", err)
	}
	if err := storage.SaveList(s.kv, storage.AccountsKey, kept); err != nil {
		return fmt.Errorf("save accounts: %w", err)
	}
	slog.Info("account deleted", "account_id", s.current.ID)
	return s.EndSession()
}

func (s *Store) setSession(acct *models.Account) error {
	if err := storage.SaveValue(s.kv, storage.SessionKey, acct); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.current = acct
	s.bus.Publish(events.UserChanged{Account: s.Current()})
	return nil
}

// snapshot captures the raw value under key and returns a func that puts
// it back, deleting the key if it did not exist.
func (s *Store) snapshot(key string) (restore func() error, err error) {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return func() error {
		if !ok {
			return s.kv.Delete(key)
		}
		return s.kv.Set(key, raw)
	}, nil
}

func (s *Store) loadAccounts() ([]models.StoredAccount, error) {
	list, _, err := storage.LoadList[models.StoredAccount](s.kv, storage.AccountsKey)
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	return list, nil
}

// nextID derives an id from the clock, bumped past any existing id so
// two registrations in the same millisecond stay distinct.
func (s *Store) nextID(list []models.StoredAccount) string {
	id := s.clock.Now().UnixMilli()
	for _, sa := range list {
		if n, err := strconv.ParseInt(sa.ID, 10, 64); err == nil && n >= id {
			id = n + 1
		}
	}
	return strconv.FormatInt(id, 10)
}
