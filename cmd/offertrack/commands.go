package main

import (
	"flag"
	"fmt"
	"strings"

	"offertrack/internal/models"
)

type applicationFlags struct {
	fs       *flag.FlagSet
	company  *string
	role     *string
	location *string
	status   *string
	date     *string
	salary   *string
	url      *string
	website  *string
	notes    *string
}

func (c *cli) applicationFlags(name string) *applicationFlags {
	fs := c.flagSet(name)
	return &applicationFlags{
		fs:       fs,
		company:  fs.String("company", "", "Company name"),
		role:     fs.String("role", "", "Role title"),
		location: fs.String("location", "", "Location"),
		status:   fs.String("status", "", "applied, interview, offer or rejected"),
		date:     fs.String("date", "", "Applied date (YYYY-MM-DD, defaults to today)"),
		salary:   fs.String("salary", "", "Salary range"),
		url:      fs.String("url", "", "Job posting URL"),
		website:  fs.String("website", "", "Company website"),
		notes:    fs.String("notes", "", "Notes"),
	}
}

func (f *applicationFlags) fields() models.ApplicationFields {
	return models.ApplicationFields{
		Company:        *f.company,
		Role:           *f.role,
		Location:       *f.location,
		SalaryRange:    *f.salary,
		Status:         models.Status(*f.status),
		AppliedDate:    *f.date,
		JobPostingURL:  *f.url,
		CompanyWebsite: *f.website,
		Notes:          *f.notes,
	}
}

// patch keeps only the flags given on the command line.
func (f *applicationFlags) patch() models.ApplicationPatch {
	var p models.ApplicationPatch
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "company":
			p.Company = f.company
		case "role":
			p.Role = f.role
		case "location":
			p.Location = f.location
		case "status":
			st := models.Status(*f.status)
			p.Status = &st
		case "date":
			p.AppliedDate = f.date
		case "salary":
			p.SalaryRange = f.salary
		case "url":
			p.JobPostingURL = f.url
		case "website":
			p.CompanyWebsite = f.website
		case "notes":
			p.Notes = f.notes
		}
	})
	return p
}

func (c *cli) app(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing app subcommand (add, list, search, show, update, delete)")
	}
	sub, args := args[0], args[1:]

	switch sub {
	case "add":
		f := c.applicationFlags("app add")
		if err := f.fs.Parse(args); err != nil {
			return err
		}
		_, err := c.h.AddApplication(f.fields())
		return err

	case "list":
		fs := c.flagSet("app list")
		term := fs.String("q", "", "Search company, role or location")
		status := fs.String("status", "all", "Filter by status")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return c.h.ListApplications(*term, *status)

	case "search":
		return c.h.ListApplications(strings.Join(args, " "), "all")

	case "show":
		id, err := requireID("app show", args)
		if err != nil {
			return err
		}
		return c.h.ShowApplication(id)

	case "update":
		id, rest := leadingID(args)
		f := c.applicationFlags("app update")
		if err := f.fs.Parse(rest); err != nil {
			return err
		}
		if id == "" {
			id = f.fs.Arg(0)
		}
		if id == "" {
			return fmt.Errorf("missing application id")
		}
		return c.h.UpdateApplication(id, f.patch())

	case "delete":
		id, err := requireID("app delete", args)
		if err != nil {
			return err
		}
		return c.h.DeleteApplication(id)

	default:
		return fmt.Errorf("unknown app subcommand %q", sub)
	}
}

type interviewFlags struct {
	fs      *flag.FlagSet
	round   *string
	date    *string
	outcome *string
	notes   *string
}

func (c *cli) interviewFlags(name string) *interviewFlags {
	fs := c.flagSet(name)
	return &interviewFlags{
		fs:      fs,
		round:   fs.String("round", "", "Round type, e.g. "+strings.Join(models.RoundTypes[:3], ", ")),
		date:    fs.String("date", "", "Interview date (YYYY-MM-DD)"),
		outcome: fs.String("outcome", "", strings.Join(models.Outcomes, ", ")),
		notes:   fs.String("notes", "", "Notes"),
	}
}

func (f *interviewFlags) patch() models.InterviewPatch {
	var p models.InterviewPatch
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "round":
			p.RoundType = f.round
		case "date":
			p.Date = f.date
		case "outcome":
			p.Outcome = f.outcome
		case "notes":
			p.Notes = f.notes
		}
	})
	return p
}

func (c *cli) interview(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing interview subcommand (add, update, delete)")
	}
	sub, args := args[0], args[1:]

	switch sub {
	case "add":
		f := c.interviewFlags("interview add")
		appID := f.fs.String("app", "", "Application id")
		if err := f.fs.Parse(args); err != nil {
			return err
		}
		_, err := c.h.AddInterview(models.InterviewFields{
			ApplicationID: *appID,
			RoundType:     *f.round,
			Date:          *f.date,
			Notes:         *f.notes,
			Outcome:       *f.outcome,
		})
		return err

	case "update":
		id, rest := leadingID(args)
		f := c.interviewFlags("interview update")
		if err := f.fs.Parse(rest); err != nil {
			return err
		}
		if id == "" {
			id = f.fs.Arg(0)
		}
		if id == "" {
			return fmt.Errorf("missing interview id")
		}
		return c.h.UpdateInterview(id, f.patch())

	case "delete":
		id, err := requireID("interview delete", args)
		if err != nil {
			return err
		}
		return c.h.DeleteInterview(id)

	default:
		return fmt.Errorf("unknown interview subcommand %q", sub)
	}
}

func (c *cli) notifications(args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}

	switch sub {
	case "list":
		return c.h.ListNotifications()
	case "read":
		id, err := requireID("notifications read", args)
		if err != nil {
			return err
		}
		return c.h.MarkNotificationRead(id)
	case "read-all":
		return c.h.MarkAllNotificationsRead()
	case "clear":
		id, err := requireID("notifications clear", args)
		if err != nil {
			return err
		}
		return c.h.ClearNotification(id)
	case "clear-all":
		return c.h.ClearAllNotifications()
	default:
		return fmt.Errorf("unknown notifications subcommand %q", sub)
	}
}

func requireID(cmd string, args []string) (string, error) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return "", fmt.Errorf("usage: offertrack %s <id>", cmd)
	}
	return args[0], nil
}
