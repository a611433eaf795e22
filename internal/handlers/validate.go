package handlers

import (
	"fmt"
	"strings"
	"time"

	"offertrack/internal/models"
)

// MinPasswordLength is the shortest secret accepted at signup.
const MinPasswordLength = 6

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{models.ErrInvalidInput}, args...)...)
}

func required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid("%s is required", name)
	}
	return nil
}

func validDate(name, value string) error {
	if _, err := time.Parse(models.DateLayout, value); err != nil {
		return invalid("%s must be a date in YYYY-MM-DD format", name)
	}
	return nil
}

func validStatus(s models.Status) error {
	if !s.Valid() {
		return invalid("status must be one of applied, interview, offer, rejected")
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// SignupForm is the input of the signup command.
type SignupForm struct {
	Name     string
	Email    string
	Password string
	Confirm  string
}

func (f SignupForm) validate() error {
	if err := firstError(
		required("name", f.Name),
		required("email", f.Email),
		required("password", f.Password),
	); err != nil {
		return err
	}
	if !strings.Contains(f.Email, "@") {
		return invalid("email address is not valid")
	}
	if f.Password != f.Confirm {
		return invalid("passwords do not match")
	}
	if len(f.Password) < MinPasswordLength {
		return invalid("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// LoginForm is the input of the login command.
type LoginForm struct {
	Email    string
	Password string
}

func (f LoginForm) validate() error {
	return firstError(required("email", f.Email), required("password", f.Password))
}

func validateApplication(f models.ApplicationFields) error {
	if err := firstError(
		required("company", f.Company),
		required("role", f.Role),
		required("location", f.Location),
		required("applied date", f.AppliedDate),
	); err != nil {
		return err
	}
	return firstError(validStatus(f.Status), validDate("applied date", f.AppliedDate))
}

func validateApplicationPatch(p models.ApplicationPatch) error {
	fields := []struct {
		name  string
		value *string
	}{{"company", p.Company}, {"role", p.Role}, {"location", p.Location}}
	for _, f := range fields {
		if f.value != nil {
			if err := required(f.name, *f.value); err != nil {
				return err
			}
		}
	}
	if p.Status != nil {
		if err := validStatus(*p.Status); err != nil {
			return err
		}
	}
	if p.AppliedDate != nil {
		return validDate("applied date", *p.AppliedDate)
	}
	return nil
}

func validateInterview(f models.InterviewFields) error {
	if err := firstError(
		required("application id", f.ApplicationID),
		required("round type", f.RoundType),
		required("date", f.Date),
	); err != nil {
		return err
	}
	return validDate("date", f.Date)
}

func validateInterviewPatch(p models.InterviewPatch) error {
	if p.RoundType != nil {
		if err := required("round type", *p.RoundType); err != nil {
			return err
		}
	}
	if p.Date != nil {
		return validDate("date", *p.Date)
	}
	return nil
}
