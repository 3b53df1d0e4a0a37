// Package store persists outputs that outlive a process: the learned
// compatibility observations and saved build results.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/Ankaaflow/pc-builder-sub000/internal/learned"
)

// SavedBuild is a persisted selection result, kept so past builds can be
// listed and re-checked after catalog data changes.
type SavedBuild struct {
	ID        string `json:"id"`
	Region    string `json:"region"`
	Budget    int    `json:"budget"`
	Payload   []byte `json:"payload"` // JSON-encoded selector result
	CreatedAt string `json:"created_at"`
}

// Store defines the persistence interface for the build engine.
type Store interface {
	learned.ObservationStore

	// Builds
	SaveBuild(ctx context.Context, region string, budget int, payload []byte) (string, error)
	ListBuilds(ctx context.Context, limit int) ([]SavedBuild, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// New opens a store for the configured driver: "sqlite" (default) or
// "postgres".
func New(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "", "sqlite":
		s, err := NewSQLite(dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres":
		s, err := NewPostgres(ctx, dsn, nil)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
}
