package handlers

import (
	"offertrack/internal/models"
)

// StatusItem is one status with its share of all applications.
type StatusItem struct {
	Status     models.Status
	Label      string
	Count      int
	Percentage float64
}

// DashboardViewModel is the data passed to the dashboard view.
type DashboardViewModel struct {
	Name               string
	Demo               bool
	Total              int
	Statuses           []StatusItem
	ResponseRate       int
	UpcomingInterviews int
	PastInterviews     int
	Recent             []models.Application
	Unread             int
}

// Dashboard renders the summary of the signed-in account's pipeline.
func (h *Handlers) Dashboard() error {
	acct, err := h.requireSession()
	if err != nil {
		return err
	}

	st := h.tracker.Stats()
	items := make([]StatusItem, 0, len(models.Statuses))
	for _, s := range models.Statuses {
		percentage := 0.0
		if st.Total > 0 {
			percentage = float64(st.ByStatus[s]) / float64(st.Total) * 100
		}
		items = append(items, StatusItem{
			Status:     s,
			Label:      s.Label(),
			Count:      st.ByStatus[s],
			Percentage: percentage,
		})
	}

	return h.render("dashboard", DashboardViewModel{
		Name:               acct.Name,
		Demo:               acct.Ephemeral,
		Total:              st.Total,
		Statuses:           items,
		ResponseRate:       st.ResponseRate,
		UpcomingInterviews: st.UpcomingInterviews,
		PastInterviews:     st.PastInterviews,
		Recent:             st.Recent,
		Unread:             h.notes.UnreadCount(),
	})
}
