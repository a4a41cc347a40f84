// Package scoreboard records reports submitted by scored hosts.
package scoreboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kothscore/helios/pkg/adapters"
	"github.com/kothscore/helios/pkg/models/api"
	"github.com/kothscore/helios/pkg/models/domain"
	"github.com/kothscore/helios/pkg/store/duckdb/submission"
	"github.com/rs/zerolog"
)

// ErrInvalidSubmission marks a request the scoreboard refuses to record
var ErrInvalidSubmission = errors.New("invalid submission")

type Service interface {
	Submit(ctx context.Context, req api.SubmissionRequest) (domain.Submission, error)
	History(ctx context.Context, team string) ([]domain.Submission, error)
	Standings(ctx context.Context) ([]domain.Submission, error)
}

// Transactor runs fn inside a storage transaction carried by its context
type Transactor func(ctx context.Context, fn func(ctx context.Context) error) error

type service struct {
	messages map[string]string
	store    submission.Store
	inTx     Transactor
	now      func() time.Time
	newID    func() string
}

// NewService builds the scoreboard over store. A nil inTx writes without a
// transaction.
func NewService(cfg *domain.Configuration, store submission.Store, inTx Transactor) Service {
	if inTx == nil {
		inTx = func(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }
	}
	messages := make(map[string]string, len(cfg.Records))
	for _, rec := range cfg.Records {
		messages[rec.Identifier] = rec.Message
	}
	return &service{
		messages: messages,
		store:    store,
		inTx:     inTx,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (s *service) Submit(ctx context.Context, req api.SubmissionRequest) (domain.Submission, error) {
	team := strings.TrimSpace(req.ID)
	if team == "" {
		return domain.Submission{}, fmt.Errorf("%w: missing id", ErrInvalidSubmission)
	}
	points, err := strconv.Atoi(strings.TrimSpace(req.Points))
	if err != nil {
		return domain.Submission{}, fmt.Errorf("%w: points %q is not a number", ErrInvalidSubmission, req.Points)
	}

	sub := domain.Submission{
		ID:          s.newID(),
		Team:        team,
		Points:      points,
		Vulns:       ResolveVulns(s.messages, req.VulnStr),
		SubmittedAt: s.now(),
	}

	err = s.inTx(ctx, func(ctx context.Context) error {
		return s.store.Add(ctx, adapters.MapDomainSubmissionToStore(sub))
	})
	if err != nil {
		return domain.Submission{}, fmt.Errorf("failed to record submission: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("team", sub.Team).
		Int("points", sub.Points).
		Strs("vulns", sub.Vulns).
		Msg("submission recorded")
	return sub, nil
}

func (s *service) History(ctx context.Context, team string) ([]domain.Submission, error) {
	rows, err := s.store.ListByTeam(ctx, team)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Submission, 0, len(rows))
	for _, row := range rows {
		out = append(out, adapters.MapStoreSubmissionToDomain(row))
	}
	return out, nil
}

func (s *service) Standings(ctx context.Context) ([]domain.Submission, error) {
	rows, err := s.store.Latest(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Submission, 0, len(rows))
	for _, row := range rows {
		out = append(out, adapters.MapStoreSubmissionToDomain(row))
	}
	return out, nil
}

// ResolveVulns splits vulnstr into identifier-sized chunks and returns the
// messages of the known ones, in order. Unknown chunks and a trailing partial
// chunk are dropped.
func ResolveVulns(messages map[string]string, vulnstr string) []string {
	vulns := make([]string, 0, len(vulnstr)/domain.IdentifierLength)
	for i := 0; i+domain.IdentifierLength <= len(vulnstr); i += domain.IdentifierLength {
		if msg, ok := messages[vulnstr[i:i+domain.IdentifierLength]]; ok {
			vulns = append(vulns, msg)
		}
	}
	return vulns
}
