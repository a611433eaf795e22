package tracker

import (
	"math"
	"sort"
	"strings"

	"offertrack/internal/models"
)

// RecentLimit is how many applications Stats reports as recent activity.
const RecentLimit = 5

// Stats summarises the loaded applications for the dashboard.
type Stats struct {
	Total    int
	ByStatus map[models.Status]int
	// ResponseRate is the rounded share of applications that moved past
	// "applied", in percent.
	ResponseRate       int
	Recent             []models.Application
	UpcomingInterviews int
	PastInterviews     int
}

// Stats computes dashboard figures. Interviews dated today count as upcoming.
func (s *Store) Stats() Stats {
	st := Stats{
		Total:    len(s.applications),
		ByStatus: make(map[models.Status]int, len(models.Statuses)),
	}
	for _, a := range s.applications {
		st.ByStatus[a.Status]++
	}

	if st.Total > 0 {
		responded := st.Total - st.ByStatus[models.StatusApplied]
		st.ResponseRate = int(math.Round(float64(responded) / float64(st.Total) * 100))
	}

	recent := cloneApps(s.applications)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].CreatedAt.After(recent[j].CreatedAt) })
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	st.Recent = recent

	today := s.clock.Now().Format(models.DateLayout)
	for _, iv := range s.interviews {
		if iv.Date >= today {
			st.UpcomingInterviews++
		} else {
			st.PastInterviews++
		}
	}
	return st
}

// Timeline returns the interviews of an application ordered by date,
// earliest first.
func (s *Store) Timeline(appID string) []models.Interview {
	ivs := s.GetInterviewsByApplicationID(appID)
	sort.SliceStable(ivs, func(i, j int) bool { return ivs[i].Date < ivs[j].Date })
	return ivs
}

// Search filters applications by a case-insensitive term over company, role
// and location, and by status. An empty status or "all" matches any.
func (s *Store) Search(term string, status string) []models.Application {
	term = strings.ToLower(strings.TrimSpace(term))
	var out []models.Application
	for _, a := range s.applications {
		if status != "" && status != "all" && string(a.Status) != status {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(a.Company), term) &&
			!strings.Contains(strings.ToLower(a.Role), term) &&
			!strings.Contains(strings.ToLower(a.Location), term) {
			continue
		}
		out = append(out, a)
	}
	return out
}
