package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for applied and interview dates.
const DateLayout = "2006-01-02"

// Status is the lifecycle stage of an application.
type Status string

const (
	StatusApplied   Status = "applied"
	StatusInterview Status = "interview"
	StatusOffer     Status = "offer"
	StatusRejected  Status = "rejected"
)

// Statuses lists every status in pipeline order.
var Statuses = []Status{StatusApplied, StatusInterview, StatusOffer, StatusRejected}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, st := range Statuses {
		if s == st {
			return true
		}
	}
	return false
}

// Label returns the capitalised display name.
func (s Status) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// Application is a single job application owned by an account.
type Application struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Company        string    `json:"company"`
	Role           string    `json:"role"`
	Location       string    `json:"location"`
	SalaryRange    string    `json:"salaryRange,omitempty"`
	Status         Status    `json:"status"`
	AppliedDate    string    `json:"appliedDate"`
	JobPostingURL  string    `json:"jobPostingUrl,omitempty"`
	CompanyWebsite string    `json:"companyWebsite,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Validate checks a persisted application record.
func (a Application) Validate() error {
	if a.ID == "" || a.UserID == "" {
		return fmt.Errorf("%w: application needs id and owner", ErrInvalidInput)
	}
	if !a.Status.Valid() {
		return fmt.Errorf("%w: application %s has status %q", ErrInvalidInput, a.ID, a.Status)
	}
	return nil
}

// ApplicationFields holds the user-supplied fields of a new application.
type ApplicationFields struct {
	Company        string
	Role           string
	Location       string
	SalaryRange    string
	Status         Status
	AppliedDate    string
	JobPostingURL  string
	CompanyWebsite string
	Notes          string
}

// ApplicationPatch holds a partial update; nil fields are left untouched.
type ApplicationPatch struct {
	Company        *string
	Role           *string
	Location       *string
	SalaryRange    *string
	Status         *Status
	AppliedDate    *string
	JobPostingURL  *string
	CompanyWebsite *string
	Notes          *string
}

// Apply merges the patch into a.
func (p ApplicationPatch) Apply(a *Application) {
	setIf(&a.Company, p.Company)
	setIf(&a.Role, p.Role)
	setIf(&a.Location, p.Location)
	setIf(&a.SalaryRange, p.SalaryRange)
	setIf(&a.AppliedDate, p.AppliedDate)
	setIf(&a.JobPostingURL, p.JobPostingURL)
	setIf(&a.CompanyWebsite, p.CompanyWebsite)
	setIf(&a.Notes, p.Notes)
	if p.Status != nil {
		a.Status = *p.Status
	}
}

// Suggested interview round types and outcomes. Stored values are free text.
var (
	RoundTypes = []string{
		"Phone Screen",
		"Technical Interview",
		"Coding Challenge",
		"System Design",
		"Behavioral Interview",
		"Team Interview",
		"Hiring Manager",
		"Onsite",
		"Final Round",
	}
	Outcomes = []string{OutcomePending, OutcomePassed, OutcomeFailed, OutcomeCancelled}
)

const (
	OutcomePending   = "Pending"
	OutcomePassed    = "Passed"
	OutcomeFailed    = "Failed"
	OutcomeCancelled = "Cancelled"
)

// Interview is one interview round of an application.
type Interview struct {
	ID            string `json:"id"`
	ApplicationID string `json:"applicationId"`
	RoundType     string `json:"roundType"`
	Date          string `json:"date"`
	Notes         string `json:"notes"`
	Outcome       string `json:"outcome"`
}

// Validate checks a persisted interview record.
func (i Interview) Validate() error {
	if i.ID == "" || i.ApplicationID == "" {
		return fmt.Errorf("%w: interview needs id and application id", ErrInvalidInput)
	}
	return nil
}

// InterviewFields holds the user-supplied fields of a new interview.
type InterviewFields struct {
	ApplicationID string
	RoundType     string
	Date          string
	Notes         string
	Outcome       string
}

// InterviewPatch holds a partial update; nil fields are left untouched.
type InterviewPatch struct {
	RoundType *string
	Date      *string
	Notes     *string
	Outcome   *string
}

// Apply merges the patch into i.
func (p InterviewPatch) Apply(i *Interview) {
	setIf(&i.RoundType, p.RoundType)
	setIf(&i.Date, p.Date)
	setIf(&i.Notes, p.Notes)
	setIf(&i.Outcome, p.Outcome)
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
