package tracker

import (
	"time"

	"offertrack/internal/models"
)

func demoApplications() []models.Application {
	at := func(s string) time.Time {
		t, _ := time.Parse(time.RFC3339, s)
		return t
	}
	return []models.Application{
		{
			ID: "1", UserID: models.DemoAccountID,
			Company: "Google", Role: "Senior Software Engineer", Location: "Mountain View, CA",
			SalaryRange: "$180k - $250k", Status: models.StatusInterview, AppliedDate: "2026-02-10",
			JobPostingURL: "https://careers.google.com", CompanyWebsite: "https://google.com",
			Notes:     "Great team culture, exciting project on cloud infrastructure",
			CreatedAt: at("2026-02-10T10:00:00Z"),
		},
		{
			ID: "2", UserID: models.DemoAccountID,
			Company: "Meta", Role: "Frontend Engineer", Location: "Menlo Park, CA",
			SalaryRange: "$160k - $220k", Status: models.StatusApplied, AppliedDate: "2026-02-12",
			JobPostingURL: "https://metacareers.com", CompanyWebsite: "https://meta.com",
			Notes:     "Working on React core team",
			CreatedAt: at("2026-02-12T14:30:00Z"),
		},
		{
			ID: "3", UserID: models.DemoAccountID,
			Company: "Amazon", Role: "Full Stack Developer", Location: "Seattle, WA",
			SalaryRange: "$150k - $200k", Status: models.StatusInterview, AppliedDate: "2026-02-05",
			CompanyWebsite: "https://amazon.com",
			Notes:          "AWS team, hybrid work model",
			CreatedAt:      at("2026-02-05T09:15:00Z"),
		},
		{
			ID: "4", UserID: models.DemoAccountID,
			Company: "Stripe", Role: "Software Engineer", Location: "San Francisco, CA",
			SalaryRange: "$170k - $230k", Status: models.StatusOffer, AppliedDate: "2026-01-28",
			JobPostingURL: "https://stripe.com/jobs", CompanyWebsite: "https://stripe.com",
			Notes:     "Offer received! Need to respond by March 1st",
			CreatedAt: at("2026-01-28T11:20:00Z"),
		},
		{
			ID: "5", UserID: models.DemoAccountID,
			Company: "Netflix", Role: "Senior Backend Engineer", Location: "Los Gatos, CA",
			SalaryRange: "$190k - $260k", Status: models.StatusRejected, AppliedDate: "2026-01-20",
			CompanyWebsite: "https://netflix.com",
			Notes:          "Rejected after phone screen",
			CreatedAt:      at("2026-01-20T16:45:00Z"),
		},
		{
			ID: "6", UserID: models.DemoAccountID,
			Company: "Airbnb", Role: "Product Engineer", Location: "Remote",
			SalaryRange: "$165k - $210k", Status: models.StatusApplied, AppliedDate: "2026-02-15",
			JobPostingURL: "https://careers.airbnb.com", CompanyWebsite: "https://airbnb.com",
			Notes:     "Fully remote position",
			CreatedAt: at("2026-02-15T13:00:00Z"),
		},
	}
}

func demoInterviews() []models.Interview {
	return []models.Interview{
		{ID: "1", ApplicationID: "1", RoundType: "Phone Screen", Date: "2026-02-14",
			Notes: "Discussed system design and past projects. Went well!", Outcome: models.OutcomePassed},
		{ID: "2", ApplicationID: "1", RoundType: "Technical Interview", Date: "2026-02-17",
			Notes: "Coding challenge on algorithms. Need to wait for feedback.", Outcome: models.OutcomePending},
		{ID: "3", ApplicationID: "3", RoundType: "Phone Screen", Date: "2026-02-08",
			Notes: "Behavioral questions and experience review", Outcome: models.OutcomePassed},
		{ID: "4", ApplicationID: "3", RoundType: "Onsite - Technical", Date: "2026-02-16",
			Notes: "4 rounds of technical interviews. Challenging but interesting.", Outcome: models.OutcomePending},
		{ID: "5", ApplicationID: "4", RoundType: "Phone Screen", Date: "2026-02-01",
			Notes: "Initial screening call", Outcome: models.OutcomePassed},
		{ID: "6", ApplicationID: "4", RoundType: "Technical Interview", Date: "2026-02-05",
			Notes: "Live coding session", Outcome: models.OutcomePassed},
		{ID: "7", ApplicationID: "4", RoundType: "Team Interview", Date: "2026-02-10",
			Notes: "Met with the team, great culture fit", Outcome: models.OutcomePassed},
	}
}
