package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const SubmissionsTableSchema = `
	CREATE TABLE IF NOT EXISTS submissions (
		id VARCHAR NOT NULL PRIMARY KEY,
		team VARCHAR NOT NULL,
		points INTEGER NOT NULL,
		vulns VARCHAR NOT NULL DEFAULT '[]',
		submitted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

const SubmissionsTeamIndex = `
	CREATE INDEX IF NOT EXISTS submissions_team_idx ON submissions (team, submitted_at);
`

var bootQueries = []string{
	SubmissionsTableSchema,
	SubmissionsTeamIndex,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
