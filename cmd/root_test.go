package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ofseed/nvim-scrollview/internal/config"
	"github.com/ofseed/nvim-scrollview/internal/infrastructure/sqlite"
)

// TestStartup_DefaultConfigValidates verifies the shipped defaults pass the
// validation run at startup.
func TestStartup_DefaultConfigValidates(t *testing.T) {
	require.NoError(t, config.Defaults().Validate())
}

// TestStartup_InvalidConfigRejected verifies that configuration errors
// surface before the program starts.
func TestStartup_InvalidConfigRejected(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*config.Config)
		errContains string
	}{
		{
			name:        "unknown indicator mode",
			mutate:      func(c *config.Config) { c.Indicator.Mode = "fancy" },
			errContains: "unknown indicator mode",
		},
		{
			name:        "unknown count strategy",
			mutate:      func(c *config.Config) { c.Indicator.CountStrategy = "hybrid" },
			errContains: "count_strategy",
		},
		{
			name:        "negative fold ratio",
			mutate:      func(c *config.Config) { c.Indicator.CountFoldRatio = -1 },
			errContains: "non-negative",
		},
		{
			name:        "fold min_lines too small",
			mutate:      func(c *config.Config) { c.Folds.MinLines = 1 },
			errContains: "min_lines",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.errContains)
		})
	}
}

// TestStartup_BookmarkDBCreated verifies that opening the bookmark database
// creates missing parent directories, the condition the default per-user
// data path depends on.
func TestStartup_BookmarkDBCreated(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "share", "scrollview", "bookmarks.db")

	_, err := os.Stat(filepath.Dir(dbPath))
	require.True(t, os.IsNotExist(err), "expected data directory to not exist")

	db, err := sqlite.NewDB(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = os.Stat(dbPath)
	require.NoError(t, err, "expected database file to be created")
}
