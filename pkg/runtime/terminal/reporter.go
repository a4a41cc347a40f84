package terminal

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/fatih/color"
	"github.com/kothscore/helios/pkg/models/domain"
)

const reportTemplate = `{{heading .Title | title}}
You have: {{good .Count}} vulns, {{good .Total}} points
{{if .Outcomes}}
{{heading "VULNS" | good}}
{{range .Awards}}{{.Message}} ({{.Identifier}}) - {{good .Points}} points
{{end}}
{{heading "PENALTIES" | bad}}
{{range .Penalties}}{{.Message}} ({{.Identifier}}) - {{magnitude .Points | bad}} points
{{end}}{{end}}`

// Reporter outputs reports to the console in a colored text form. Every
// counted outcome is listed: penalties under PENALTIES, the rest under VULNS.
type Reporter struct {
	writer io.Writer
	tmpl   *template.Template
}

// NewReporter creates a new console reporter. Colors follow the terminal
// unless noColor is set.
func NewReporter(writer io.Writer, noColor bool) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}

	title := color.New(color.FgBlue, color.Bold)
	good := color.New(color.FgGreen, color.Bold)
	bad := color.New(color.FgRed, color.Bold)
	if noColor {
		for _, c := range []*color.Color{title, good, bad} {
			c.DisableColor()
		}
	}

	funcMap := template.FuncMap{
		"heading": func(s string) string { return fmt.Sprintf("[ -- %s -- ]", s) },
		"title":   title.SprintFunc(),
		"good":    good.SprintFunc(),
		"bad":     bad.SprintFunc(),
		"magnitude": func(points int) int {
			if points < 0 {
				return -points
			}
			return points
		},
	}

	return &Reporter{
		writer: writer,
		tmpl:   template.Must(template.New("report").Funcs(funcMap).Parse(reportTemplate)),
	}
}

func (r *Reporter) Handle(report *domain.Report) error {
	if err := r.tmpl.Execute(r.writer, report); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}
