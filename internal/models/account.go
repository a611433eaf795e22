package models

import (
	"fmt"
	"strings"
)

// Demonstration account constants.
const (
	DemoAccountID = "demo"
	DemoName      = "Demo User"
	DemoEmail     = "demo@offertrack.com"
	DemoSecret    = "demo123"
)

// Account is the session-facing view of a registered account.
type Account struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`

	// Ephemeral accounts are immutable and none of their data is persisted.
	Ephemeral bool `json:"-"`
}

// DemoAccount returns a fresh copy of the demonstration account.
func DemoAccount() *Account {
	return &Account{
		ID:        DemoAccountID,
		Name:      DemoName,
		Email:     DemoEmail,
		Ephemeral: true,
	}
}

// RestoreAccount rebuilds an account read back from storage. The
// demonstration account is always reset to its constants.
func RestoreAccount(a Account) *Account {
	if a.ID == DemoAccountID {
		return DemoAccount()
	}
	a.Ephemeral = false
	return &a
}

// IsDemoCredentials reports whether the pair matches the demonstration login.
func IsDemoCredentials(email, secret string) bool {
	return email == DemoEmail && secret == DemoSecret
}

// Validate checks a session record.
func (a Account) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("%w: account id is empty", ErrInvalidInput)
	}
	if !strings.Contains(a.Email, "@") {
		return fmt.Errorf("%w: account email %q", ErrInvalidInput, a.Email)
	}
	return nil
}

// StoredAccount is an entry of the registered-accounts list.
type StoredAccount struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Secret string `json:"password"`
}

// Account returns the session view of the entry.
func (s StoredAccount) Account() *Account {
	return &Account{ID: s.ID, Name: s.Name, Email: s.Email}
}

// Validate checks a registered-accounts entry.
func (s StoredAccount) Validate() error {
	if s.ID == "" || s.Email == "" {
		return fmt.Errorf("%w: stored account needs id and email", ErrInvalidInput)
	}
	if s.Secret == "" {
		return fmt.Errorf("%w: stored account %s has no secret", ErrInvalidInput, s.ID)
	}
	return nil
}
