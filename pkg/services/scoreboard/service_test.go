package scoreboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kothscore/helios/pkg/models/api"
	"github.com/kothscore/helios/pkg/models/domain"
	"github.com/kothscore/helios/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Add(ctx context.Context, s store.Submission) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockStore) ListByTeam(ctx context.Context, team string) ([]store.Submission, error) {
	args := m.Called(ctx, team)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Submission), args.Error(1)
}

func (m *mockStore) Latest(ctx context.Context) ([]store.Submission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Submission), args.Error(1)
}

var (
	fixedTime = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	drill     = &domain.Configuration{
		Title: "Drill",
		Records: []domain.Record{
			{Message: "SSH up", Identifier: "ABC123", Points: 10},
			{Message: "Telnet on", Identifier: "XYZ999", Points: -5},
		},
	}
)

func newTestService(st *mockStore) *service {
	s := NewService(drill, st, nil).(*service)
	s.now = func() time.Time { return fixedTime }
	s.newID = func() string { return "sub-1" }
	return s
}

func TestResolveVulns(t *testing.T) {
	messages := map[string]string{"ABC123": "SSH up", "XYZ999": "Telnet on"}

	tests := []struct {
		name     string
		vulnstr  string
		expected []string
	}{
		{name: "empty", vulnstr: "", expected: []string{}},
		{name: "in order", vulnstr: "XYZ999ABC123", expected: []string{"Telnet on", "SSH up"}},
		{name: "unknown chunk ignored", vulnstr: "ABC123NOPE00XYZ999", expected: []string{"SSH up", "Telnet on"}},
		{name: "trailing partial chunk ignored", vulnstr: "ABC123XYZ", expected: []string{"SSH up"}},
		{name: "misaligned", vulnstr: "BC123XYZ999A", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveVulns(messages, tt.vulnstr))
		})
	}
}

func TestService_Submit(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		// Given
		st := new(mockStore)
		st.On("Add", mock.Anything, store.Submission{
			ID:          "sub-1",
			Team:        "team-7",
			Points:      5,
			Vulns:       []string{"SSH up", "Telnet on"},
			SubmittedAt: fixedTime,
		}).Return(nil)

		// When
		sub, err := newTestService(st).Submit(context.Background(), api.SubmissionRequest{
			ID: "team-7", VulnStr: "ABC123XYZ999", Points: "5",
		})

		// Then
		require.NoError(t, err)
		assert.Equal(t, "team-7", sub.Team)
		assert.Equal(t, 5, sub.Points)
		st.AssertExpectations(t)
	})

	t.Run("negative points", func(t *testing.T) {
		st := new(mockStore)
		st.On("Add", mock.Anything, mock.Anything).Return(nil)

		sub, err := newTestService(st).Submit(context.Background(), api.SubmissionRequest{ID: "team-7", Points: "-12"})

		require.NoError(t, err)
		assert.Equal(t, -12, sub.Points)
		assert.Empty(t, sub.Vulns)
	})

	t.Run("invalid requests", func(t *testing.T) {
		for _, req := range []api.SubmissionRequest{
			{ID: "", Points: "5"},
			{ID: "team-7", Points: "five"},
			{ID: "team-7", Points: ""},
		} {
			st := new(mockStore)
			_, err := newTestService(st).Submit(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidSubmission)
			st.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		st := new(mockStore)
		st.On("Add", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		_, err := newTestService(st).Submit(context.Background(), api.SubmissionRequest{ID: "team-7", Points: "1"})

		assert.ErrorContains(t, err, "disk full")
		assert.NotErrorIs(t, err, ErrInvalidSubmission)
	})
}

func TestService_HistoryAndStandings(t *testing.T) {
	rows := []store.Submission{{ID: "s1", Team: "team-7", Points: 10, Vulns: []string{"SSH up"}, SubmittedAt: fixedTime}}
	st := new(mockStore)
	st.On("ListByTeam", mock.Anything, "team-7").Return(rows, nil)
	st.On("Latest", mock.Anything).Return(nil, errors.New("closed"))
	svc := newTestService(st)

	history, err := svc.History(context.Background(), "team-7")
	require.NoError(t, err)
	assert.Equal(t, []domain.Submission{{ID: "s1", Team: "team-7", Points: 10, Vulns: []string{"SSH up"}, SubmittedAt: fixedTime}}, history)

	_, err = svc.Standings(context.Background())
	assert.ErrorContains(t, err, "closed")
}

func TestService_SubmitRunsInTransaction(t *testing.T) {
	t.Run("store writes inside the transaction", func(t *testing.T) {
		// Given
		type txMarker struct{}
		st := new(mockStore)
		st.On("Add", mock.MatchedBy(func(ctx context.Context) bool { return ctx.Value(txMarker{}) != nil }), mock.Anything).
			Return(nil)
		calls := 0
		inTx := func(ctx context.Context, fn func(ctx context.Context) error) error {
			calls++
			return fn(context.WithValue(ctx, txMarker{}, true))
		}
		svc := NewService(drill, st, inTx)

		// When
		_, err := svc.Submit(context.Background(), api.SubmissionRequest{ID: "team-7", Points: "3"})

		// Then
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		st.AssertExpectations(t)
	})

	t.Run("transaction failure", func(t *testing.T) {
		st := new(mockStore)
		inTx := func(context.Context, func(ctx context.Context) error) error {
			return errors.New("begin transaction: closed")
		}

		_, err := NewService(drill, st, inTx).Submit(context.Background(), api.SubmissionRequest{ID: "team-7", Points: "3"})

		assert.ErrorContains(t, err, "begin transaction")
		st.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})
}
