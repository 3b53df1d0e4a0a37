package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/Ankaaflow/pc-builder-sub000/internal/learned"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS observations (
	pair_key     TEXT PRIMARY KEY,
	name_a       TEXT NOT NULL,
	name_b       TEXT NOT NULL,
	compatible   INTEGER NOT NULL,
	confidence   REAL NOT NULL,
	observations INTEGER NOT NULL DEFAULT 1,
	updated_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS builds (
	id         TEXT PRIMARY KEY,
	region     TEXT NOT NULL,
	budget     INTEGER NOT NULL,
	payload    TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_observations_updated_at ON observations(updated_at);
CREATE INDEX IF NOT EXISTS idx_builds_region ON builds(region);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) LoadObservations(ctx context.Context) ([]learned.Observation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT pair_key, name_a, name_b, compatible, confidence, observations, updated_at FROM observations`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: load observations")
	}
	defer rows.Close()

	var out []learned.Observation
	for rows.Next() {
		var obs learned.Observation
		var compatible int
		if err := rows.Scan(&obs.PairKey, &obs.NameA, &obs.NameB, &compatible, &obs.Confidence, &obs.Observations, &obs.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan observation")
		}
		obs.Compatible = compatible != 0
		out = append(out, obs)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: load observations iterate")
}

func (s *SQLiteStore) UpsertObservation(ctx context.Context, obs learned.Observation) error {
	compatible := 0
	if obs.Compatible {
		compatible = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO observations (pair_key, name_a, name_b, compatible, confidence, observations, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(pair_key) DO UPDATE SET
			compatible = excluded.compatible,
			confidence = excluded.confidence,
			observations = excluded.observations,
			updated_at = excluded.updated_at`,
		obs.PairKey, obs.NameA, obs.NameB, compatible, obs.Confidence, obs.Observations, obs.UpdatedAt,
	)
	return eris.Wrapf(err, "sqlite: upsert observation %s", obs.PairKey)
}

func (s *SQLiteStore) SaveBuild(ctx context.Context, region string, budget int, payload []byte) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO builds (id, region, budget, payload, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, region, budget, string(payload), time.Now().UTC(),
	)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: insert build")
	}
	return id, nil
}

func (s *SQLiteStore) ListBuilds(ctx context.Context, limit int) ([]SavedBuild, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, region, budget, payload, created_at FROM builds ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list builds")
	}
	defer rows.Close()

	var out []SavedBuild
	for rows.Next() {
		var sb SavedBuild
		var payload string
		if err := rows.Scan(&sb.ID, &sb.Region, &sb.Budget, &payload, &sb.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan build")
		}
		sb.Payload = []byte(payload)
		out = append(out, sb)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list builds iterate")
}
