package handlers

import (
	"fmt"

	"offertrack/internal/models"
)

// ApplicationGroup groups applications sharing a status.
type ApplicationGroup struct {
	Status models.Status
	Title  string
	Items  []models.Application
}

// ListViewModel is the data passed to the list view.
type ListViewModel struct {
	Total  int
	Groups []ApplicationGroup
}

// DetailViewModel is the data passed to the application detail view.
type DetailViewModel struct {
	App      models.Application
	Timeline []models.Interview
}

// AddApplication validates and stores a new application. An empty status
// means applied and an empty date means today.
func (h *Handlers) AddApplication(f models.ApplicationFields) (*models.Application, error) {
	if _, err := h.requireSession(); err != nil {
		return nil, err
	}
	if f.Status == "" {
		f.Status = models.StatusApplied
	}
	if f.AppliedDate == "" {
		f.AppliedDate = h.clock.Now().Format(models.DateLayout)
	}
	if err := validateApplication(f); err != nil {
		return nil, err
	}

	app, err := h.tracker.AddApplication(f)
	if err != nil {
		return nil, err
	}
	h.notify(models.KindSuccess, "Application added successfully!", fmt.Sprintf("%s at %s", app.Role, app.Company))
	fmt.Fprintf(h.out, "Added application %s\n", app.ID)
	return app, nil
}

// UpdateApplication applies a partial update to an existing application.
func (h *Handlers) UpdateApplication(id string, patch models.ApplicationPatch) error {
	if _, err := h.requireSession(); err != nil {
		return err
	}
	app, ok := h.tracker.GetApplicationByID(id)
	if !ok {
		return fmt.Errorf("application %q: %w", id, models.ErrNotFound)
	}
	if err := validateApplicationPatch(patch); err != nil {
		return err
	}

	if err := h.tracker.UpdateApplication(id, patch); err != nil {
		return err
	}
	h.notify(models.KindSuccess, "Application updated successfully!", fmt.Sprintf("%s at %s", app.Role, app.Company))
	fmt.Fprintf(h.out, "Updated application %s\n", id)
	return nil
}

// DeleteApplication removes an application and its interviews.
func (h *Handlers) DeleteApplication(id string) error {
	if _, err := h.requireSession(); err != nil {
		return err
	}
	app, ok := h.tracker.GetApplicationByID(id)
	if !ok {
		return fmt.Errorf("application %q: %w", id, models.ErrNotFound)
	}

	if err := h.tracker.DeleteApplication(id); err != nil {
		return err
	}
	h.notify(models.KindInfo, "Application deleted", fmt.Sprintf("%s at %s", app.Role, app.Company))
	fmt.Fprintf(h.out, "Deleted application %s\n", id)
	return nil
}

// ListApplications renders the applications matching term and status,
// grouped by status in pipeline order.
func (h *Handlers) ListApplications(term, status string) error {
	if _, err := h.requireSession(); err != nil {
		return err
	}
	if status != "" && status != "all" {
		if err := validStatus(models.Status(status)); err != nil {
			return err
		}
	}

	apps := h.tracker.Search(term, status)
	byStatus := make(map[models.Status][]models.Application, len(models.Statuses))
	for _, a := range apps {
		byStatus[a.Status] = append(byStatus[a.Status], a)
	}

	vm := ListViewModel{Total: len(apps)}
	for _, st := range models.Statuses {
		if items := byStatus[st]; len(items) > 0 {
			vm.Groups = append(vm.Groups, ApplicationGroup{Status: st, Title: st.Label(), Items: items})
		}
	}
	return h.render("list", vm)
}

// ShowApplication renders one application with its interview timeline.
func (h *Handlers) ShowApplication(id string) error {
	if _, err := h.requireSession(); err != nil {
		return err
	}
	app, ok := h.tracker.GetApplicationByID(id)
	if !ok {
		return fmt.Errorf("application %q: %w", id, models.ErrNotFound)
	}
	return h.render("detail", DetailViewModel{App: *app, Timeline: h.tracker.Timeline(id)})
}

// AddInterview validates and stores a new interview round. An empty
// outcome means pending.
func (h *Handlers) AddInterview(f models.InterviewFields) (*models.Interview, error) {
	if _, err := h.requireSession(); err != nil {
		return nil, err
	}
	if f.Outcome == "" {
		f.Outcome = models.OutcomePending
	}
	if err := validateInterview(f); err != nil {
		return nil, err
	}

	iv, err := h.tracker.AddInterview(f)
	if err != nil {
		return nil, err
	}
	h.notify(models.KindSuccess, "Interview added successfully!", fmt.Sprintf("%s on %s", iv.RoundType, iv.Date))
	fmt.Fprintf(h.out, "Added interview %s\n", iv.ID)
	return iv, nil
}

// UpdateInterview applies a partial update to an existing interview.
func (h *Handlers) UpdateInterview(id string, patch models.InterviewPatch) error {
	if _, err := h.requireSession(); err != nil {
		return err
	}
	iv, ok := h.findInterview(id)
	if !ok {
		return fmt.Errorf("interview %q: %w", id, models.ErrNotFound)
	}
	if err := validateInterviewPatch(patch); err != nil {
		return err
	}

	if err := h.tracker.UpdateInterview(id, patch); err != nil {
		return err
	}
	patch.Apply(&iv)
	h.notify(models.KindSuccess, "Interview updated!", fmt.Sprintf("%s details have been saved.", iv.RoundType))
	fmt.Fprintf(h.out, "Updated interview %s\n", id)
	return nil
}

// DeleteInterview removes an interview round.
func (h *Handlers) DeleteInterview(id string) error {
	if _, err := h.requireSession(); err != nil {
		return err
	}
	iv, ok := h.findInterview(id)
	if !ok {
		return fmt.Errorf("interview %q: %w", id, models.ErrNotFound)
	}

	if err := h.tracker.DeleteInterview(id); err != nil {
		return err
	}
	h.notify(models.KindInfo, "Interview deleted", fmt.Sprintf("%s on %s", iv.RoundType, iv.Date))
	fmt.Fprintf(h.out, "Deleted interview %s\n", id)
	return nil
}

func (h *Handlers) findInterview(id string) (models.Interview, bool) {
	for _, iv := range h.tracker.Interviews() {
		if iv.ID == id {
			return iv, true
		}
	}
	return models.Interview{}, false
}
