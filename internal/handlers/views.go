package handlers

import (
	"fmt"
	"text/template"
)

var views = template.Must(template.New("views").Parse(`
{{- define "list" -}}
{{- if eq .Total 0}}No applications found.
{{else -}}
{{- range .Groups}}{{.Title}} ({{len .Items}})
{{range .Items}}  {{.ID}}  {{.Company}} - {{.Role}} - {{.Location}}  applied {{.AppliedDate}}
{{end}}
{{end}}{{.Total}} application(s)
{{end}}
{{- end}}

{{- define "detail" -}}
{{.App.Company}} - {{.App.Role}}
  ID:        {{.App.ID}}
  Status:    {{.App.Status.Label}}
  Location:  {{.App.Location}}
  Applied:   {{.App.AppliedDate}}
{{- with .App.SalaryRange}}
  Salary:    {{.}}{{end}}
{{- with .App.JobPostingURL}}
  Posting:   {{.}}{{end}}
{{- with .App.CompanyWebsite}}
  Website:   {{.}}{{end}}
{{- with .App.Notes}}
  Notes:     {{.}}{{end}}

Interviews ({{len .Timeline}})
{{range .Timeline}}  {{.Date}}  {{.RoundType}} [{{.Outcome}}]  id={{.ID}}
{{- with .Notes}}
             {{.}}{{end}}
{{else}}  No interviews yet
{{end}}
{{- end}}

{{- define "dashboard" -}}
Welcome back, {{.Name}}!{{if .Demo}} (demo account, changes are not saved){{end}}

Total applications: {{.Total}}
{{range .Statuses}}  {{printf "%-10s" .Label}} {{printf "%3d" .Count}}  {{printf "%5.1f%%" .Percentage}}
{{end}}
Response rate:       {{.ResponseRate}}%
Upcoming interviews: {{.UpcomingInterviews}}
Past interviews:     {{.PastInterviews}}
Unread notifications: {{.Unread}}

Recent activity
{{range .Recent}}  {{.ID}}  {{.Company}} - {{.Role}} ({{.Status.Label}})
{{else}}  No applications yet
{{end}}
{{- end}}

{{- define "notifications" -}}
{{.Unread}} unread
{{range .Items}}{{.Marker}} {{.Time}}  [{{.Kind}}] {{.Title}}{{with .Description}}: {{.}}{{end}}  id={{.ID}}
{{else}}No notifications
{{end}}
{{- end}}
`))

func (h *Handlers) render(viewName string, data any) error {
	if err := views.ExecuteTemplate(h.out, viewName, data); err != nil {
		return fmt.Errorf("render %s: %w", viewName, err)
	}
	return nil
}
