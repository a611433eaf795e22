// Package tracker keeps the applications and interviews of the signed-in
// account and writes both lists back on every change.
package tracker

import (
	"fmt"
	"log/slog"
	"strconv"

	"offertrack/internal/events"
	"offertrack/internal/models"
	"offertrack/internal/storage"

	"github.com/jonboulle/clockwork"
)

// Store holds the application and interview lists of one account at a time.
type Store struct {
	kv    storage.KV
	clock clockwork.Clock

	account      *models.Account
	applications []models.Application
	interviews   []models.Interview
	lastID       int64
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for ids and timestamps.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Store) { s.clock = clock }
}

// NewStore creates a Store that reloads itself whenever the session changes.
func NewStore(kv storage.KV, bus *events.Bus, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		clock: clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}

	bus.Subscribe(func(e events.UserChanged) {
		if err := s.Load(e.Account); err != nil {
			slog.Error("failed to load applications", "account_id", e.AccountID(), "error", err)
		}
	})
	return s
}

// Load replaces the in-memory lists with those of account. A nil account
// clears them. Ephemeral accounts without stored data get the demo dataset.
func (s *Store) Load(account *models.Account) error {
	if account == nil {
		s.account, s.applications, s.interviews, s.lastID = nil, nil, nil, 0
		return nil
	}

	apps, appsFound, err := storage.LoadList[models.Application](s.kv, storage.ApplicationsKey(account.ID))
	if err != nil {
		return fmt.Errorf("load applications: %w", err)
	}
	ivs, ivsFound, err := storage.LoadList[models.Interview](s.kv, storage.InterviewsKey(account.ID))
	if err != nil {
		return fmt.Errorf("load interviews: %w", err)
	}
	if account.Ephemeral {
		if !appsFound {
			apps = demoApplications()
		}
		if !ivsFound {
			ivs = demoInterviews()
		}
	}

	acct := *account
	s.account = &acct
	s.applications = apps
	s.interviews = ivs
	s.lastID = 0
	for _, a := range apps {
		s.observeID(a.ID)
	}
	for _, iv := range ivs {
		s.observeID(iv.ID)
	}
	slog.Debug("applications loaded", "account_id", acct.ID, "applications", len(apps), "interviews", len(ivs))
	return nil
}

// AddApplication stores a new application owned by the signed-in account.
func (s *Store) AddApplication(f models.ApplicationFields) (*models.Application, error) {
	if s.account == nil {
		return nil, models.ErrNoSession
	}

	app := models.Application{
		ID:             s.nextID(),
		UserID:         s.account.ID,
		Company:        f.Company,
		Role:           f.Role,
		Location:       f.Location,
		SalaryRange:    f.SalaryRange,
		Status:         f.Status,
		AppliedDate:    f.AppliedDate,
		JobPostingURL:  f.JobPostingURL,
		CompanyWebsite: f.CompanyWebsite,
		Notes:          f.Notes,
		CreatedAt:      s.clock.Now().UTC(),
	}

	apps := append(cloneApps(s.applications), app)
	if err := s.commit(apps, s.interviews); err != nil {
		return nil, err
	}
	return &app, nil
}

// UpdateApplication merges patch into the application with id. Unknown ids
// are ignored.
func (s *Store) UpdateApplication(id string, patch models.ApplicationPatch) error {
	apps := cloneApps(s.applications)
	for i := range apps {
		if apps[i].ID == id {
			patch.Apply(&apps[i])
			return s.commit(apps, s.interviews)
		}
	}
	return nil
}

// DeleteApplication removes the application and all of its interviews.
func (s *Store) DeleteApplication(id string) error {
	apps := make([]models.Application, 0, len(s.applications))
	for _, a := range s.applications {
		if a.ID != id {
			apps = append(apps, a)
		}
	}
	ivs := make([]models.Interview, 0, len(s.interviews))
	for _, iv := range s.interviews {
		if iv.ApplicationID != id {
			ivs = append(ivs, iv)
		}
	}
	return s.commit(apps, ivs)
}

// AddInterview stores a new interview. The owning application must exist.
func (s *Store) AddInterview(f models.InterviewFields) (*models.Interview, error) {
	if s.account == nil {
		return nil, models.ErrNoSession
	}
	if _, ok := s.GetApplicationByID(f.ApplicationID); !ok {
		return nil, fmt.Errorf("application %q: %w", f.ApplicationID, models.ErrNotFound)
	}

	iv := models.Interview{
		ID:            s.nextID(),
		ApplicationID: f.ApplicationID,
		RoundType:     f.RoundType,
		Date:          f.Date,
		Notes:         f.Notes,
		Outcome:       f.Outcome,
	}

	ivs := append(cloneInterviews(s.interviews), iv)
	if err := s.commit(s.applications, ivs); err != nil {
		return nil, err
	}
	return &iv, nil
}

// UpdateInterview merges patch into the interview with id. Unknown ids are
// ignored.
func (s *Store) UpdateInterview(id string, patch models.InterviewPatch) error {
	ivs := cloneInterviews(s.interviews)
	for i := range ivs {
		if ivs[i].ID == id {
			patch.Apply(&ivs[i])
			return s.commit(s.applications, ivs)
		}
	}
	return nil
}

// DeleteInterview removes the interview with id.
func (s *Store) DeleteInterview(id string) error {
	ivs := make([]models.Interview, 0, len(s.interviews))
	for _, iv := range s.interviews {
		if iv.ID != id {
			ivs = append(ivs, iv)
		}
	}
	return s.commit(s.applications, ivs)
}

// GetApplicationByID looks up an application of the loaded account.
func (s *Store) GetApplicationByID(id string) (*models.Application, bool) {
	for _, a := range s.applications {
		if a.ID == id {
			return &a, true
		}
	}
	return nil, false
}

// GetInterviewsByApplicationID returns the interviews of an application in
// storage order.
func (s *Store) GetInterviewsByApplicationID(appID string) []models.Interview {
	var out []models.Interview
	for _, iv := range s.interviews {
		if iv.ApplicationID == appID {
			out = append(out, iv)
		}
	}
	return out
}

// Applications returns a copy of every loaded application.
func (s *Store) Applications() []models.Application {
	return cloneApps(s.applications)
}

// Interviews returns a copy of every loaded interview.
func (s *Store) Interviews() []models.Interview {
	return cloneInterviews(s.interviews)
}

// commit persists both lists and, only if that worked, swaps them in.
func (s *Store) commit(apps []models.Application, ivs []models.Interview) error {
	if s.account != nil && !s.account.Ephemeral {
		if err := storage.SaveList(s.kv, storage.ApplicationsKey(s.account.ID), apps); err != nil {
			return fmt.Errorf("save applications: %w", err)
		}
		if err := storage.SaveList(s.kv, storage.InterviewsKey(s.account.ID), ivs); err != nil {
			return fmt.Errorf("save interviews: %w", err)
		}
	}
	s.applications = apps
	s.interviews = ivs
	return nil
}

func (s *Store) nextID() string {
	id := s.clock.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

func (s *Store) observeID(id string) {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil && n > s.lastID {
		s.lastID = n
	}
}

func cloneApps(in []models.Application) []models.Application {
	return append([]models.Application(nil), in...)
}

func cloneInterviews(in []models.Interview) []models.Interview {
	return append([]models.Interview(nil), in...)
}
