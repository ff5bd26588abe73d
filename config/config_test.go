package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcdannyboy/mcprice/models"
)

func TestLoadWithoutPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	p, err := cfg.Parameters()
	require.NoError(t, err)
	assert.Equal(t, models.CombinerPathwise, p.Combiner)
	assert.Equal(t, models.SideCall, p.Sides)
}

func TestLoadOverlaysYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcprice.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
spot: 120
volatility: 0.35
simulations: 5000
antithetic: true
control_variate: true
combiner: regression
sides: call,put
engine:
  workers: 3
  seed: 77
log:
  level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 120.0, cfg.Spot)
	assert.Equal(t, 100.0, cfg.Strike)
	assert.Equal(t, 0.35, cfg.Volatility)
	assert.Equal(t, 50, cfg.Steps)
	assert.Equal(t, 3, cfg.Engine.Workers)
	assert.Equal(t, uint64(77), cfg.Engine.Seed)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 50, cfg.Log.MaxSizeMB)

	p, err := cfg.Parameters()
	require.NoError(t, err)
	assert.Equal(t, models.CombinerRegression, p.Combiner)
	assert.True(t, p.Sides.Has(models.SidePut))
	assert.True(t, p.Antithetic)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("spot: [1, 2"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("MCPRICE_SPOT", "95.5")
	t.Setenv("MCPRICE_STEPS", "12")
	t.Setenv("MCPRICE_ANTITHETIC", "Yes")
	t.Setenv("MCPRICE_SEED", "123")
	t.Setenv("MCPRICE_COMBINER", "regression")
	t.Setenv("MCPRICE_LOG_LEVEL", "warn")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, 95.5, cfg.Spot)
	assert.Equal(t, 12, cfg.Steps)
	assert.True(t, cfg.Antithetic)
	assert.Equal(t, uint64(123), cfg.Engine.Seed)
	assert.Equal(t, "regression", cfg.Combiner)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestApplyEnvRejectsBadValues(t *testing.T) {
	t.Setenv("MCPRICE_SIMULATIONS", "many")
	assert.Error(t, Default().ApplyEnv())
}

func TestApplyEnvRejectsBadBool(t *testing.T) {
	t.Setenv("MCPRICE_CONTROL_VARIATE", "maybe")
	err := Default().ApplyEnv()
	assert.True(t, errors.Is(err, ErrNotYesNo))
}

func TestParametersValidates(t *testing.T) {
	cfg := Default()
	cfg.Sides = "put"
	_, err := cfg.Parameters()
	assert.True(t, errors.Is(err, models.ErrPutNeedsRegression))

	cfg = Default()
	cfg.Combiner = "ols"
	_, err = cfg.Parameters()
	assert.True(t, errors.Is(err, models.ErrUnknownCombiner))

	cfg = Default()
	cfg.Steps = 0
	_, err = cfg.Parameters()
	assert.True(t, errors.Is(err, models.ErrNoSteps))
}

func TestParseYesNo(t *testing.T) {
	for _, s := range []string{"yes", "YES", " y ", "true", "1", "on"} {
		v, err := ParseYesNo(s)
		require.NoError(t, err, s)
		assert.True(t, v, s)
	}
	for _, s := range []string{"no", "No", "n", "false", "0", "off"} {
		v, err := ParseYesNo(s)
		require.NoError(t, err, s)
		assert.False(t, v, s)
	}
	_, err := ParseYesNo("sure")
	assert.True(t, errors.Is(err, ErrNotYesNo))
}
