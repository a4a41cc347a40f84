package adapters

import (
	"github.com/kothscore/helios/pkg/models/api"
	"github.com/kothscore/helios/pkg/models/domain"
	"github.com/kothscore/helios/pkg/models/store"
)

func MapDomainSubmissionToStore(s domain.Submission) store.Submission {
	return store.Submission{
		ID:          s.ID,
		Team:        s.Team,
		Points:      s.Points,
		Vulns:       s.Vulns,
		SubmittedAt: s.SubmittedAt,
	}
}

func MapStoreSubmissionToDomain(s store.Submission) domain.Submission {
	return domain.Submission{
		ID:          s.ID,
		Team:        s.Team,
		Points:      s.Points,
		Vulns:       s.Vulns,
		SubmittedAt: s.SubmittedAt,
	}
}

func MapDomainSubmissionToAPI(s domain.Submission) api.Submission {
	vulns := s.Vulns
	if vulns == nil {
		vulns = []string{}
	}
	return api.Submission{
		ID:     s.ID,
		Team:   s.Team,
		Points: s.Points,
		Vulns:  vulns,
		Time:   s.SubmittedAt.Unix(),
	}
}
