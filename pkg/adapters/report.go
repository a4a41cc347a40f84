package adapters

import (
	"strconv"

	"github.com/kothscore/helios/pkg/models/api"
	"github.com/kothscore/helios/pkg/models/domain"
)

func MapDomainReportToAPI(report *domain.Report) api.Report {
	outcomes := make([]api.Outcome, 0, len(report.Outcomes))
	for _, o := range report.Outcomes {
		outcomes = append(outcomes, api.Outcome{
			Message:    o.Message,
			Identifier: o.Identifier,
			Points:     o.Points,
		})
	}
	return api.Report{
		Title:       report.Title,
		Count:       report.Count,
		Total:       report.Total,
		Outcomes:    outcomes,
		GeneratedAt: report.GeneratedAt,
	}
}

func MapDomainReportToSubmissionRequest(team string, report *domain.Report) api.SubmissionRequest {
	return api.SubmissionRequest{
		ID:      team,
		VulnStr: report.Identifiers(),
		Points:  strconv.Itoa(report.Total),
	}
}
