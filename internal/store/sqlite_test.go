package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ankaaflow/pc-builder-sub000/internal/learned"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteStore_ObservationRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	obs := learned.Observation{
		PairKey:      "amd-ryzen-5-7600::noctua-nh-u12s",
		NameA:        "Noctua NH-U12S",
		NameB:        "AMD Ryzen 5 7600",
		Compatible:   true,
		Confidence:   0.6,
		Observations: 1,
		UpdatedAt:    time.Now().UTC(),
	}
	require.NoError(t, s.UpsertObservation(ctx, obs))

	loaded, err := s.LoadObservations(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, obs.PairKey, loaded[0].PairKey)
	assert.Equal(t, obs.NameA, loaded[0].NameA)
	assert.Equal(t, obs.NameB, loaded[0].NameB)
	assert.True(t, loaded[0].Compatible)
	assert.InDelta(t, 0.6, loaded[0].Confidence, 1e-9)
	assert.Equal(t, 1, loaded[0].Observations)
}

func TestSQLiteStore_UpsertReplacesByPairKey(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	obs := learned.Observation{
		PairKey:    "a::b",
		NameA:      "a",
		NameB:      "b",
		Compatible: true,
		Confidence: 0.6, Observations: 1,
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, s.UpsertObservation(ctx, obs))

	obs.Confidence = 0.7
	obs.Observations = 2
	require.NoError(t, s.UpsertObservation(ctx, obs))

	loaded, err := s.LoadObservations(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.InDelta(t, 0.7, loaded[0].Confidence, 1e-9)
	assert.Equal(t, 2, loaded[0].Observations)
}

func TestSQLiteStore_SaveAndListBuilds(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	id1, err := s.SaveBuild(ctx, "US", 1200, []byte(`{"budget":1200}`))
	require.NoError(t, err)
	_, err = uuid.Parse(id1)
	require.NoError(t, err)

	id2, err := s.SaveBuild(ctx, "EU", 900, []byte(`{"budget":900}`))
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	builds, err := s.ListBuilds(ctx, 10)
	require.NoError(t, err)
	require.Len(t, builds, 2)

	regions := []string{builds[0].Region, builds[1].Region}
	assert.ElementsMatch(t, []string{"US", "EU"}, regions)
	for _, b := range builds {
		assert.NotEmpty(t, b.Payload)
		assert.NotEmpty(t, b.CreatedAt)
	}
}

func TestSQLiteStore_ListBuildsLimit(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	for i := 0; i < 5; i++ {
		_, err := s.SaveBuild(ctx, "US", 1000+i, []byte(`{}`))
		require.NoError(t, err)
	}

	builds, err := s.ListBuilds(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, builds, 3)
}

func TestSQLiteStore_LoadObservationsEmpty(t *testing.T) {
	s := newTestSQLite(t)

	loaded, err := s.LoadObservations(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
