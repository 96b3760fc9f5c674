package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-finance/internal/model"
	"solar-finance/internal/portfolio"
)

func TestRunCache_PutGet(t *testing.T) {
	c := NewRunCache(time.Hour)
	defer c.Close()

	run := &model.SimulationRun{ID: "r1"}
	c.Put(run)
	got, ok := c.Get("r1")
	require.True(t, ok)
	assert.Same(t, run, got)
	assert.Equal(t, 1, c.Len())

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestRunCache_Expiry(t *testing.T) {
	c := NewRunCache(time.Minute)
	defer c.Close()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Put(&model.SimulationRun{ID: "r1"})
	now = now.Add(2 * time.Minute)
	_, ok := c.Get("r1")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())

	c.evictExpired()
	assert.Empty(t, c.store)
}

func TestRunCache_NilSafe(t *testing.T) {
	var c *RunCache
	c.Put(&model.SimulationRun{ID: "r1"})
	_, ok := c.Get("r1")
	assert.False(t, ok)
	c.Close()
}

func TestPortfolio_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "portfolio.json")
	npv := 1234.0
	pf := &PortfolioFile{
		Name:      "campus",
		UpdatedAt: "2026-10-18T09:00:00Z",
		Sites: []SiteEntry{{
			Profile:   model.SiteEnergyProfile{SiteID: "a", AnnualConsumptionKWh: 46212, TariffRate: 0.0779},
			Design:    model.SystemDesign{PVSizeKW: 26},
			Overrides: portfolio.Overrides{NPV: &npv},
		}},
	}
	require.NoError(t, SavePortfolio(pf, path))

	got, err := LoadPortfolio(path)
	require.NoError(t, err)
	assert.Equal(t, pf, got)
}

func TestLoadPortfolio_RequiresSiteID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"x","sites":[{"profile":{"tariff_rate":0.1}}]}`), 0o644))
	_, err := LoadPortfolio(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "site_id")
}
