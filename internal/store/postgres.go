package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/Ankaaflow/pc-builder-sub000/internal/learned"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock satisfies
// it, so the postgres store is unit-testable without a database.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS observations (
	pair_key     TEXT PRIMARY KEY,
	name_a       TEXT NOT NULL,
	name_b       TEXT NOT NULL,
	compatible   BOOLEAN NOT NULL,
	confidence   DOUBLE PRECISION NOT NULL,
	observations INTEGER NOT NULL DEFAULT 1,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS builds (
	id         TEXT PRIMARY KEY,
	region     TEXT NOT NULL,
	budget     INTEGER NOT NULL,
	payload    JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_observations_updated_at ON observations(updated_at);
CREATE INDEX IF NOT EXISTS idx_builds_region ON builds(region);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) LoadObservations(ctx context.Context) ([]learned.Observation, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT pair_key, name_a, name_b, compatible, confidence, observations, updated_at FROM observations`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: load observations")
	}
	defer rows.Close()

	var out []learned.Observation
	for rows.Next() {
		var obs learned.Observation
		if err := rows.Scan(&obs.PairKey, &obs.NameA, &obs.NameB, &obs.Compatible, &obs.Confidence, &obs.Observations, &obs.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan observation")
		}
		out = append(out, obs)
	}
	return out, eris.Wrap(rows.Err(), "postgres: load observations iterate")
}

func (s *PostgresStore) UpsertObservation(ctx context.Context, obs learned.Observation) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO observations (pair_key, name_a, name_b, compatible, confidence, observations, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (pair_key) DO UPDATE SET
			compatible = EXCLUDED.compatible,
			confidence = EXCLUDED.confidence,
			observations = EXCLUDED.observations,
			updated_at = EXCLUDED.updated_at`,
		obs.PairKey, obs.NameA, obs.NameB, obs.Compatible, obs.Confidence, obs.Observations, obs.UpdatedAt,
	)
	return eris.Wrapf(err, "postgres: upsert observation %s", obs.PairKey)
}

func (s *PostgresStore) SaveBuild(ctx context.Context, region string, budget int, payload []byte) (string, error) {
	id := uuid.New().String()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO builds (id, region, budget, payload, created_at) VALUES ($1, $2, $3, $4, $5)`,
		id, region, budget, payload, time.Now().UTC(),
	)
	if err != nil {
		return "", eris.Wrap(err, "postgres: insert build")
	}
	return id, nil
}

func (s *PostgresStore) ListBuilds(ctx context.Context, limit int) ([]SavedBuild, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, region, budget, payload, created_at FROM builds ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list builds")
	}
	defer rows.Close()

	var out []SavedBuild
	for rows.Next() {
		var sb SavedBuild
		var created time.Time
		if err := rows.Scan(&sb.ID, &sb.Region, &sb.Budget, &sb.Payload, &created); err != nil {
			return nil, eris.Wrap(err, "postgres: scan build")
		}
		sb.CreatedAt = created.UTC().Format(time.RFC3339)
		out = append(out, sb)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list builds iterate")
}
