package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestoreAccount(t *testing.T) {
	demo := RestoreAccount(Account{ID: DemoAccountID, Name: "Renamed", Email: "x@y.z"})
	assert.True(t, demo.Ephemeral)
	assert.Equal(t, DemoName, demo.Name)
	assert.Equal(t, DemoEmail, demo.Email)

	regular := RestoreAccount(Account{ID: "1", Name: "Alice", Email: "a@x.com", Ephemeral: true})
	assert.False(t, regular.Ephemeral)
	assert.Equal(t, "Alice", regular.Name)
}

func TestIsDemoCredentials(t *testing.T) {
	assert.True(t, IsDemoCredentials(DemoEmail, DemoSecret))
	assert.False(t, IsDemoCredentials(DemoEmail, "wrong"))
	assert.False(t, IsDemoCredentials("other@x.com", DemoSecret))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		record  interface{ Validate() error }
		wantErr bool
	}{
		{"account", Account{ID: "1", Email: "a@x.com"}, false},
		{"account without id", Account{Email: "a@x.com"}, true},
		{"account with bad email", Account{ID: "1", Email: "nope"}, true},
		{"stored account", StoredAccount{ID: "1", Email: "a@x.com", Secret: "hash"}, false},
		{"stored account without secret", StoredAccount{ID: "1", Email: "a@x.com"}, true},
		{"application", Application{ID: "1", UserID: "u", Status: StatusOffer}, false},
		{"application with unknown status", Application{ID: "1", UserID: "u", Status: "ghosted"}, true},
		{"application without owner", Application{ID: "1", Status: StatusApplied}, true},
		{"interview", Interview{ID: "1", ApplicationID: "2"}, false},
		{"orphan interview", Interview{ID: "1"}, true},
		{"notification", Notification{ID: "n", Kind: KindInfo, Timestamp: time.Now()}, false},
		{"notification with unknown kind", Notification{ID: "n", Kind: "fatal", Timestamp: time.Now()}, true},
		{"notification without timestamp", Notification{ID: "n", Kind: KindInfo}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidInput)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestApplicationPatchApply(t *testing.T) {
	app := Application{ID: "1", UserID: "u", Company: "Acme", Role: "Engineer", Status: StatusApplied}
	offer := StatusOffer
	notes := "Signed"

	ApplicationPatch{Status: &offer, Notes: &notes}.Apply(&app)

	assert.Equal(t, StatusOffer, app.Status)
	assert.Equal(t, "Signed", app.Notes)
	assert.Equal(t, "Acme", app.Company)
	assert.Equal(t, "1", app.ID)
}

func TestInterviewPatchApply(t *testing.T) {
	iv := Interview{ID: "1", ApplicationID: "2", RoundType: "Onsite", Outcome: OutcomePending}
	passed := OutcomePassed

	InterviewPatch{Outcome: &passed}.Apply(&iv)

	assert.Equal(t, OutcomePassed, iv.Outcome)
	assert.Equal(t, "Onsite", iv.RoundType)
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Interview", StatusInterview.Label())
	assert.Equal(t, "", Status("").Label())
	assert.False(t, Status("ghosted").Valid())
}
