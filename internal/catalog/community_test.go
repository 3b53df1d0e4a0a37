package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ankaaflow/pc-builder-sub000/internal/learned"
	"github.com/Ankaaflow/pc-builder-sub000/internal/model"
)

func TestCommunity_IngestRecordsPairs(t *testing.T) {
	ctx := context.Background()
	overlay := learned.NewOverlay(ctx, nil)
	p := NewCommunity(overlay)

	p.IngestBuild(ctx, []model.Component{
		comp("AMD Ryzen 5 7600", model.CategoryCPU, 229),
		comp("MSI B650 Tomahawk", model.CategoryMotherboard, 179),
		comp("Thermalright Peerless Assassin 120", model.CategoryCooler, 39),
		comp("Corsair Vengeance 32GB DDR5-6000", model.CategoryMemory, 95),
	})

	// CPU+motherboard, CPU+cooler, motherboard+memory.
	assert.Equal(t, 3, overlay.Len())

	j, err := overlay.Check(ctx, "AMD Ryzen 5 7600", "Thermalright Peerless Assassin 120")
	require.NoError(t, err)
	assert.True(t, j.Compatible)
	assert.Equal(t, "observed", j.Source)
}

func TestCommunity_IngestPartialBuild(t *testing.T) {
	ctx := context.Background()
	overlay := learned.NewOverlay(ctx, nil)
	p := NewCommunity(overlay)

	// No motherboard or memory present, only CPU+cooler is evidenced.
	p.IngestBuild(ctx, []model.Component{
		comp("Intel Core i5-13600K", model.CategoryCPU, 285),
		comp("DeepCool AK620", model.CategoryCooler, 65),
	})
	assert.Equal(t, 1, overlay.Len())
}

func TestCommunity_NilOverlay(t *testing.T) {
	ctx := context.Background()
	p := NewCommunity(nil)

	p.IngestBuild(ctx, []model.Component{
		comp("AMD Ryzen 5 7600", model.CategoryCPU, 229),
		comp("MSI B650 Tomahawk", model.CategoryMotherboard, 179),
	})

	cpus, err := p.Candidates(ctx, model.CategoryCPU, "US")
	require.NoError(t, err)
	assert.Len(t, cpus, 1)
}

func TestCommunity_CandidatesFilterByRegion(t *testing.T) {
	ctx := context.Background()
	p := NewCommunity(nil)
	p.IngestBuild(ctx, []model.Component{
		comp("AMD Ryzen 5 7600", model.CategoryCPU, 229),
	})

	cpus, err := p.Candidates(ctx, model.CategoryCPU, "EU")
	require.NoError(t, err)
	assert.Empty(t, cpus)

	assert.Equal(t, TierCommunity, p.Tier())
}

func TestCommunity_RepeatIngestCorroborates(t *testing.T) {
	ctx := context.Background()
	overlay := learned.NewOverlay(ctx, nil)
	p := NewCommunity(overlay)

	parts := []model.Component{
		comp("AMD Ryzen 5 7600", model.CategoryCPU, 229),
		comp("MSI B650 Tomahawk", model.CategoryMotherboard, 179),
	}
	p.IngestBuild(ctx, parts)
	p.IngestBuild(ctx, parts)

	j, err := overlay.Check(ctx, "AMD Ryzen 5 7600", "MSI B650 Tomahawk")
	require.NoError(t, err)
	assert.InDelta(t, 0.7, j.Confidence, 1e-9, "second sighting raises confidence")
}
