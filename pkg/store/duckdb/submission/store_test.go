package submission

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/kothscore/helios/pkg/models/store"
	"github.com/kothscore/helios/pkg/store/duckdb"
	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	s, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{
		db:    db,
		store: s,
	}
}

var base = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func TestNewStore(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := setupFixture(t)
		assert.NotNil(t, f.store)
	})

	t.Run("nil db", func(t *testing.T) {
		s, err := NewStore(nil)
		assert.Error(t, err)
		assert.Nil(t, s)
	})
}

func TestStore_AddAndListByTeam(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		// Given
		first := store.Submission{ID: "s1", Team: "team-7", Points: 10, Vulns: []string{"SSH up"}, SubmittedAt: base}
		second := store.Submission{ID: "s2", Team: "team-7", Points: -3, Vulns: nil, SubmittedAt: base.Add(time.Minute)}
		other := store.Submission{ID: "s3", Team: "team-9", Points: 4, Vulns: []string{"Banner set"}, SubmittedAt: base}

		// When
		for _, s := range []store.Submission{first, second, other} {
			require.NoError(t, f.store.Add(ctx, s))
		}
		got, err := f.store.ListByTeam(ctx, "team-7")

		// Then
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "s2", got[0].ID)
		assert.Equal(t, -3, got[0].Points)
		assert.Empty(t, got[0].Vulns)
		assert.Equal(t, []string{"SSH up"}, got[1].Vulns)
		assert.True(t, base.Equal(got[1].SubmittedAt))
	})

	t.Run("unknown team", func(t *testing.T) {
		got, err := f.store.ListByTeam(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("duplicate id", func(t *testing.T) {
		err := f.store.Add(ctx, store.Submission{ID: "s1", Team: "team-7", SubmittedAt: base})
		assert.Error(t, err)
	})
}

func TestStore_AddWithinTransaction(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	tx, err := f.db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, f.store.Add(duckdb.WithTransaction(ctx, tx), store.Submission{ID: "tx1", Team: "team-7", SubmittedAt: base}))
	require.NoError(t, tx.Rollback())

	got, err := f.store.ListByTeam(ctx, "team-7")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_Latest(t *testing.T) {
	// Given
	f := setupFixture(t)
	ctx := context.Background()
	for _, s := range []store.Submission{
		{ID: "a1", Team: "alpha", Points: 30, SubmittedAt: base},
		{ID: "a2", Team: "alpha", Points: 12, SubmittedAt: base.Add(time.Minute)},
		{ID: "b1", Team: "bravo", Points: 20, SubmittedAt: base},
	} {
		require.NoError(t, f.store.Add(ctx, s))
	}

	// When
	got, err := f.store.Latest(ctx)

	// Then
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b1", got[0].ID)
	assert.Equal(t, "a2", got[1].ID)
}

func TestStore_QueryErrors(t *testing.T) {
	// Given: a sqlmock DB that fails every query
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM submissions")).
		WithArgs("team-7").
		WillReturnError(errors.New("database is locked"))
	mock.ExpectQuery(regexp.QuoteMeta("ROW_NUMBER()")).
		WillReturnError(errors.New("database is locked"))

	s, err := NewStore(db)
	require.NoError(t, err)

	// When
	_, listErr := s.ListByTeam(context.Background(), "team-7")
	_, latestErr := s.Latest(context.Background())

	// Then
	assert.ErrorContains(t, listErr, "database is locked")
	assert.ErrorContains(t, latestErr, "database is locked")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CorruptVulns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "team", "points", "vulns", "submitted_at"}).
		AddRow("s1", "team-7", 10, "not json", base)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE team = ?")).WithArgs("team-7").WillReturnRows(rows)

	s, err := NewStore(db)
	require.NoError(t, err)

	_, err = s.ListByTeam(context.Background(), "team-7")

	assert.ErrorContains(t, err, "decode vulns")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_AddExec(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO submissions")).
		WithArgs("s1", "team-7", 10, `["SSH up","Banner set"]`, base).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s, err := NewStore(db)
	require.NoError(t, err)

	err = s.Add(context.Background(), store.Submission{
		ID: "s1", Team: "team-7", Points: 10, Vulns: []string{"SSH up", "Banner set"}, SubmittedAt: base,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
