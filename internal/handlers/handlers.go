// Package handlers turns command input into store calls, mirrors each
// outcome to the notification log and renders text views.
package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"offertrack/internal/accounts"
	"offertrack/internal/models"
	"offertrack/internal/notifications"
	"offertrack/internal/tracker"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Handlers holds the stores a command works on.
type Handlers struct {
	accounts *accounts.Store
	tracker  *tracker.Store
	notes    *notifications.Store
	display  notifications.Display
	clock    clockwork.Clock
	out      io.Writer
}

// NewHandlers creates a new Handlers instance. Views are written to out;
// display receives notices raised while nobody is signed in.
func NewHandlers(
	acc *accounts.Store,
	tr *tracker.Store,
	notes *notifications.Store,
	display notifications.Display,
	clock clockwork.Clock,
	out io.Writer,
) *Handlers {
	return &Handlers{
		accounts: acc,
		tracker:  tr,
		notes:    notes,
		display:  display,
		clock:    clock,
		out:      out,
	}
}

// notify records an outcome in the signed-in account's log. Without a
// session the notice is only displayed.
func (h *Handlers) notify(kind models.Kind, title, description string) {
	if !h.accounts.IsAuthenticated() {
		h.show(kind, title, description)
		return
	}
	if _, err := h.notes.Add(kind, title, description); err != nil {
		slog.Error("failed to record notification", "title", title, "error", err)
	}
}

// show displays a notice without logging it.
func (h *Handlers) show(kind models.Kind, title, description string) {
	if h.display == nil {
		return
	}
	h.display.Show(models.Notification{
		ID:          uuid.NewString(),
		Kind:        kind,
		Title:       title,
		Description: description,
		Timestamp:   h.clock.Now().UTC(),
	})
}

func (h *Handlers) requireSession() (*models.Account, error) {
	acct := h.accounts.Current()
	if acct == nil {
		return nil, models.ErrNoSession
	}
	return acct, nil
}

// Signup registers an account and signs it in.
func (h *Handlers) Signup(f SignupForm) (*models.Account, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	if err := f.validate(); err != nil {
		return nil, err
	}

	acct, err := h.accounts.Register(f.Name, f.Email, f.Password)
	switch {
	case errors.Is(err, models.ErrDuplicateEmail):
		h.notify(models.KindError, "Signup failed", "An account with this email already exists.")
		return nil, err
	case errors.Is(err, models.ErrReservedEmail):
		h.notify(models.KindError, "Signup failed", "This email is reserved for the demo account.")
		return nil, err
	case err != nil:
		h.notify(models.KindError, "Signup error", "Something went wrong. Please try again.")
		return nil, err
	}

	h.notify(models.KindSuccess, "Account created successfully!", fmt.Sprintf("Welcome to OfferTrack, %s!", acct.Name))
	fmt.Fprintf(h.out, "Signed in as %s <%s>\n", acct.Name, acct.Email)
	return acct, nil
}

// Login signs in with email and password.
func (h *Handlers) Login(f LoginForm) (*models.Account, error) {
	f.Email = strings.TrimSpace(f.Email)
	if err := f.validate(); err != nil {
		return nil, err
	}

	acct, err := h.accounts.Authenticate(f.Email, f.Password)
	if err != nil {
		// A failed attempt never lands in the signed-in account's log.
		if errors.Is(err, models.ErrInvalidCredentials) {
			h.show(models.KindError, "Login failed", "Invalid email or password.")
		}
		return nil, err
	}

	if acct.Ephemeral {
		h.notify(models.KindSuccess, "Logged in with demo account!", "")
	} else {
		h.notify(models.KindSuccess, "Welcome back!", "")
	}
	fmt.Fprintf(h.out, "Signed in as %s <%s>\n", acct.Name, acct.Email)
	return acct, nil
}

// Demo signs in with the built-in demonstration account.
func (h *Handlers) Demo() (*models.Account, error) {
	return h.Login(LoginForm{Email: models.DemoEmail, Password: models.DemoSecret})
}

// Logout ends the session.
func (h *Handlers) Logout() error {
	if !h.accounts.IsAuthenticated() {
		fmt.Fprintln(h.out, "Not signed in")
		return nil
	}
	if err := h.accounts.EndSession(); err != nil {
		return err
	}
	fmt.Fprintln(h.out, "Signed out")
	return nil
}

// WhoAmI prints the signed-in account.
func (h *Handlers) WhoAmI() error {
	acct := h.accounts.Current()
	if acct == nil {
		fmt.Fprintln(h.out, "Not signed in")
		return nil
	}
	suffix := ""
	if acct.Ephemeral {
		suffix = " (demo, changes are not saved)"
	}
	fmt.Fprintf(h.out, "%s <%s> id=%s%s\n", acct.Name, acct.Email, acct.ID, suffix)
	return nil
}

// Rename changes the display name of the signed-in account.
func (h *Handlers) Rename(name string) error {
	acct, err := h.requireSession()
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if err := required("name", name); err != nil {
		return err
	}
	if name == acct.Name {
		return nil
	}

	if err := h.accounts.RenameCurrent(name); err != nil {
		h.notify(models.KindError, "Failed to update name", "Unable to update your profile.")
		return err
	}
	h.notify(models.KindSuccess, "Name updated successfully!", "Your profile has been updated.")
	fmt.Fprintf(h.out, "Name changed to %s\n", name)
	return nil
}

// DeleteAccount removes the signed-in account with all its data and signs out.
func (h *Handlers) DeleteAccount() error {
	if _, err := h.requireSession(); err != nil {
		return err
	}
	if err := h.accounts.DeleteCurrent(); err != nil {
		if errors.Is(err, models.ErrImmutableAccount) {
			h.notify(models.KindError, "Cannot delete account", "The demo account cannot be deleted.")
		}
		return err
	}
	// The log went with the account, so the notice is only displayed.
	h.notify(models.KindSuccess, "Account deleted successfully", "Your account and all data have been removed.")
	fmt.Fprintln(h.out, "Account deleted")
	return nil
}
