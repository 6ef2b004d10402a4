package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ofseed/nvim-scrollview/internal/scrollview"
)

func TestDefaults_Valid(t *testing.T) {
	require.NoError(t, Defaults().Validate())
}

func TestEngineConfig_TranslatesFields(t *testing.T) {
	cfg := Defaults()
	cfg.Indicator.Mode = "simple"
	cfg.Indicator.SimpleThreshold = 5000
	cfg.Indicator.IncludeEnd = true
	cfg.Indicator.CountStrategy = "spanwise"
	cfg.Indicator.LookupStrategy = "linewise"
	cfg.Indicator.CountFoldRatio = 0.25
	cfg.Indicator.LookupFoldRatio = 0.5
	cfg.Indicator.MaxMarkersPerRow = 3

	engineCfg, err := cfg.EngineConfig()
	require.NoError(t, err)

	require.Equal(t, scrollview.ModeSimple, engineCfg.Mode)
	require.Equal(t, 5000, engineCfg.SimpleThreshold)
	require.True(t, engineCfg.IncludeEnd)
	require.Equal(t, scrollview.StrategySpanwise, engineCfg.CountStrategy)
	require.Equal(t, scrollview.StrategyLinewise, engineCfg.LookupStrategy)
	require.Equal(t, 0.25, engineCfg.CountFoldRatio)
	require.Equal(t, 0.5, engineCfg.LookupFoldRatio)
	require.Equal(t, 3, engineCfg.MaxMarkersPerRow)
}

func TestEngineConfig_EmptyStringsMeanDefaults(t *testing.T) {
	cfg := Defaults()
	cfg.Indicator.Mode = ""
	cfg.Indicator.CountStrategy = ""
	cfg.Indicator.LookupStrategy = ""

	engineCfg, err := cfg.EngineConfig()
	require.NoError(t, err)

	require.Equal(t, scrollview.ModeVirtual, engineCfg.Mode)
	require.Equal(t, scrollview.StrategyAuto, engineCfg.CountStrategy)
	require.Equal(t, scrollview.StrategyAuto, engineCfg.LookupStrategy)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		errContains string
	}{
		{
			name:        "bad mode",
			mutate:      func(c *Config) { c.Indicator.Mode = "diagonal" },
			errContains: "unknown indicator mode",
		},
		{
			name:        "bad count strategy",
			mutate:      func(c *Config) { c.Indicator.CountStrategy = "both" },
			errContains: "count_strategy",
		},
		{
			name:        "bad lookup strategy",
			mutate:      func(c *Config) { c.Indicator.LookupStrategy = "both" },
			errContains: "lookup_strategy",
		},
		{
			name:        "negative lookup ratio",
			mutate:      func(c *Config) { c.Indicator.LookupFoldRatio = -0.1 },
			errContains: "non-negative",
		},
		{
			name:        "min_lines below two",
			mutate:      func(c *Config) { c.Folds.MinLines = 0 },
			errContains: "min_lines",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestEngineConfig_RejectsInvalid(t *testing.T) {
	cfg := Defaults()
	cfg.Indicator.Mode = "diagonal"
	_, err := cfg.EngineConfig()
	require.Error(t, err)
}
