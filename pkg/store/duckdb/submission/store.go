package submission

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kothscore/helios/pkg/models/store"
	"github.com/kothscore/helios/pkg/store/duckdb"
)

// Store persists scoreboard submissions in DuckDB
type Store interface {
	Add(ctx context.Context, submission store.Submission) error
	ListByTeam(ctx context.Context, team string) ([]store.Submission, error)
	// Latest returns the most recent submission of every team, highest points first
	Latest(ctx context.Context) ([]store.Submission, error)
}

type submissionStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &submissionStore{
		db: db,
	}, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func (s *submissionStore) Add(ctx context.Context, submission store.Submission) error {
	var conn execer = s.db
	if tx := duckdb.GetTransaction(ctx); tx != nil {
		conn = tx
	}

	vulns := submission.Vulns
	if vulns == nil {
		vulns = []string{}
	}
	encoded, err := json.Marshal(vulns)
	if err != nil {
		return fmt.Errorf("marshal vulns: %w", err)
	}

	_, err = conn.ExecContext(ctx,
		`INSERT INTO submissions (id, team, points, vulns, submitted_at) VALUES (?, ?, ?, ?, ?)`,
		submission.ID,
		submission.Team,
		submission.Points,
		string(encoded),
		submission.SubmittedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

func (s *submissionStore) ListByTeam(ctx context.Context, team string) ([]store.Submission, error) {
	query := `
		SELECT id, team, points, vulns, submitted_at
		FROM submissions
		WHERE team = ?
		ORDER BY submitted_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, team)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()
	return scanSubmissionRows(rows)
}

func (s *submissionStore) Latest(ctx context.Context) ([]store.Submission, error) {
	query := `
		SELECT id, team, points, vulns, submitted_at
		FROM (
			SELECT id, team, points, vulns, submitted_at,
			       ROW_NUMBER() OVER (PARTITION BY team ORDER BY submitted_at DESC) AS rn
			FROM submissions
		)
		WHERE rn = 1
		ORDER BY points DESC, team
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query latest submissions: %w", err)
	}
	defer rows.Close()
	return scanSubmissionRows(rows)
}

func scanSubmissionRows(rows *sql.Rows) ([]store.Submission, error) {
	submissions := make([]store.Submission, 0)
	for rows.Next() {
		var (
			id, team, vulnsRaw string
			points             int
			submittedAt        time.Time
		)
		if err := rows.Scan(&id, &team, &points, &vulnsRaw, &submittedAt); err != nil {
			return nil, err
		}
		vulns := []string{}
		if vulnsRaw != "" {
			if err := json.Unmarshal([]byte(vulnsRaw), &vulns); err != nil {
				return nil, fmt.Errorf("submission %s: decode vulns: %w", id, err)
			}
		}
		submissions = append(submissions, store.Submission{
			ID:          id,
			Team:        team,
			Points:      points,
			Vulns:       vulns,
			SubmittedAt: submittedAt,
		})
	}
	return submissions, rows.Err()
}
