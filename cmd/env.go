package main

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Ankaaflow/pc-builder-sub000/internal/catalog"
	"github.com/Ankaaflow/pc-builder-sub000/internal/compat"
	"github.com/Ankaaflow/pc-builder-sub000/internal/learned"
	"github.com/Ankaaflow/pc-builder-sub000/internal/model"
	"github.com/Ankaaflow/pc-builder-sub000/internal/selector"
	"github.com/Ankaaflow/pc-builder-sub000/internal/store"
)

// env wires the engine's collaborators for a command invocation.
type env struct {
	Store    store.Store
	Overlay  *learned.Overlay
	Registry *catalog.Registry
	Reporter *compat.Reporter
	Selector *selector.Selector
}

// initEnv assembles store, overlay, catalog providers, reporter and
// selector from configuration. A store open failure is downgraded to
// in-memory operation: the engine must keep working without persistence.
func initEnv(ctx context.Context) (*env, error) {
	e := &env{}

	st, err := store.New(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
	if err != nil {
		zap.L().Warn("store unavailable, continuing without persistence", zap.Error(err))
		st = nil
	} else {
		if err := st.Migrate(ctx); err != nil {
			zap.L().Warn("store migration failed, continuing without persistence", zap.Error(err))
			_ = st.Close()
			st = nil
		}
	}
	e.Store = st

	var obsStore learned.ObservationStore
	if st != nil {
		obsStore = st
	}
	e.Overlay = learned.NewOverlay(ctx, obsStore)

	static, err := loadStatic()
	if err != nil {
		return nil, err
	}

	e.Registry = catalog.NewRegistry()
	e.Registry.Register(static)
	if cfg.Catalog.ScrapeSim {
		e.Registry.Register(catalog.NewScrapeSim(static, cfg.Selector.Seed))
	}
	e.Registry.Register(catalog.NewCommunity(e.Overlay))

	e.Reporter = compat.NewReporter(e.Overlay)
	e.Selector = selector.New(e.Registry, e.Reporter, selector.Options{
		EnvelopeStretch: cfg.Selector.EnvelopeStretch,
		Seed:            cfg.Selector.Seed,
	})

	return e, nil
}

func (e *env) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

func loadStatic() (*catalog.StaticProvider, error) {
	if cfg.Catalog.Path != "" {
		return catalog.NewStaticFromFile(cfg.Catalog.Path)
	}
	return catalog.NewEmbedded()
}

// parseRegion validates a region flag against the configured set.
func parseRegion(region string) (model.Region, error) {
	if !cfg.SupportedRegion(region) {
		return "", eris.Errorf("unsupported region %q (supported: %s)", region, strings.Join(cfg.Regions, ", "))
	}
	return model.Region(strings.ToUpper(region)), nil
}

// findComponent resolves an ID or name against the merged catalog.
func findComponent(ctx context.Context, reg *catalog.Registry, idOrName string, region model.Region) (*model.Component, error) {
	want := model.NormalizeName(idOrName)
	for _, cat := range model.AllCategories() {
		cands, err := reg.Candidates(ctx, cat, region)
		if err != nil {
			return nil, eris.Wrapf(err, "lookup %s", idOrName)
		}
		for i := range cands {
			if cands[i].ID == idOrName || model.NormalizeName(cands[i].Name) == want {
				return &cands[i], nil
			}
		}
	}
	return nil, eris.Errorf("component %q not found in catalog", idOrName)
}
