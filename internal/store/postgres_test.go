package store

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ankaaflow/pc-builder-sub000/internal/learned"
)

func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &PostgresStore{pool: mock}, mock
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS observations").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpsertObservation(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	obs := learned.Observation{
		PairKey:      "a::b",
		NameA:        "a",
		NameB:        "b",
		Compatible:   true,
		Confidence:   0.7,
		Observations: 2,
		UpdatedAt:    time.Now().UTC(),
	}
	mock.ExpectExec("INSERT INTO observations").
		WithArgs(obs.PairKey, obs.NameA, obs.NameB, obs.Compatible, obs.Confidence, obs.Observations, obs.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.UpsertObservation(context.Background(), obs))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LoadObservations(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"pair_key", "name_a", "name_b", "compatible", "confidence", "observations", "updated_at"}).
		AddRow("a::b", "a", "b", true, 0.6, 1, now).
		AddRow("c::d", "c", "d", false, 0.8, 3, now)
	mock.ExpectQuery("SELECT (.+) FROM observations").WillReturnRows(rows)

	loaded, err := s.LoadObservations(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "a::b", loaded[0].PairKey)
	assert.True(t, loaded[0].Compatible)
	assert.False(t, loaded[1].Compatible)
	assert.Equal(t, 3, loaded[1].Observations)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LoadObservationsQueryError(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery("SELECT (.+) FROM observations").
		WillReturnError(eris.New("connection refused"))

	_, err := s.LoadObservations(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: load observations")
}

func TestPostgresStore_SaveBuild(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec("INSERT INTO builds").
		WithArgs(pgxmock.AnyArg(), "US", 1200, []byte(`{"budget":1200}`), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	id, err := s.SaveBuild(context.Background(), "US", 1200, []byte(`{"budget":1200}`))
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListBuilds(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"id", "region", "budget", "payload", "created_at"}).
		AddRow("id-1", "US", 1200, []byte(`{}`), now)
	mock.ExpectQuery("SELECT (.+) FROM builds").WithArgs(10).WillReturnRows(rows)

	builds, err := s.ListBuilds(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, builds, 1)
	assert.Equal(t, "id-1", builds[0].ID)
	assert.Equal(t, 1200, builds[0].Budget)
	assert.Equal(t, now.Format(time.RFC3339), builds[0].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListBuildsDefaultLimit(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery("SELECT (.+) FROM builds").WithArgs(50).
		WillReturnRows(pgxmock.NewRows([]string{"id", "region", "budget", "payload", "created_at"}))

	builds, err := s.ListBuilds(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, builds)
	assert.NoError(t, mock.ExpectationsWereMet())
}
