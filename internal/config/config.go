// Package config provides configuration types and defaults for scrollview.
package config

import (
	"fmt"
	"time"

	"github.com/ofseed/nvim-scrollview/internal/scrollview"
)

// IndicatorConfig holds the position indicator tunables.
type IndicatorConfig struct {
	// Mode selects how the thumb's effective line count is derived:
	// "virtual" (folds collapse to one row, default) or "simple".
	Mode string `mapstructure:"mode"`

	// SimpleThreshold is the line count past which virtual mode degrades
	// to simple geometry. <= 0 disables the fallback.
	SimpleThreshold int `mapstructure:"simple_threshold"`

	// IncludeEnd lets the thumb travel past the last full page so the
	// final line can become the topline.
	IncludeEnd bool `mapstructure:"include_end"`

	// CountStrategy / LookupStrategy force a computation strategy:
	// "auto" (default), "spanwise", or "linewise".
	CountStrategy  string `mapstructure:"count_strategy"`
	LookupStrategy string `mapstructure:"lookup_strategy"`

	// CountFoldRatio / LookupFoldRatio are the cost-model constants: the
	// spanwise strategy is chosen when foldCount < ratio*rangeLength.
	// Workload dependent, hence configurable.
	CountFoldRatio  float64 `mapstructure:"count_fold_ratio"`
	LookupFoldRatio float64 `mapstructure:"lookup_fold_ratio"`

	// Character is the glyph used to draw the thumb.
	Character string `mapstructure:"character"`

	// TrackCharacter is the glyph for the track behind the thumb;
	// empty draws no track.
	TrackCharacter string `mapstructure:"track_character"`

	// MaxMarkersPerRow bounds how many marker glyphs share one track row.
	MaxMarkersPerRow int `mapstructure:"max_markers_per_row"`
}

// MarkerConfig holds marker provider toggles.
type MarkerConfig struct {
	Search    bool `mapstructure:"search"`
	Diff      bool `mapstructure:"diff"`
	Cursor    bool `mapstructure:"cursor"`
	Bookmarks bool `mapstructure:"bookmarks"`
}

// FoldConfig controls fold discovery.
type FoldConfig struct {
	// MinLines is the minimum region size DetectIndent will fold.
	MinLines int `mapstructure:"min_lines"`
	// CloseOnOpen closes all detected folds when a file is opened.
	CloseOnOpen bool `mapstructure:"close_on_open"`
}

// Config holds all configuration options for scrollview.
type Config struct {
	AutoReload      bool            `mapstructure:"auto_reload"`
	ReloadDebounce  time.Duration   `mapstructure:"reload_debounce"`
	RefreshDebounce time.Duration   `mapstructure:"refresh_debounce"`
	BookmarkDB      string          `mapstructure:"bookmark_db"`
	Indicator       IndicatorConfig `mapstructure:"indicator"`
	Markers         MarkerConfig    `mapstructure:"markers"`
	Folds           FoldConfig      `mapstructure:"folds"`
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		AutoReload:      true,
		ReloadDebounce:  250 * time.Millisecond,
		RefreshDebounce: scrollview.DefaultRefreshDebounce,
		Indicator: IndicatorConfig{
			Mode:             "virtual",
			SimpleThreshold:  scrollview.DefaultSimpleThreshold,
			IncludeEnd:       false,
			CountStrategy:    "auto",
			LookupStrategy:   "auto",
			CountFoldRatio:   scrollview.DefaultCountFoldRatio,
			LookupFoldRatio:  scrollview.DefaultLookupFoldRatio,
			Character:        "█",
			TrackCharacter:   "░",
			MaxMarkersPerRow: 1,
		},
		Markers: MarkerConfig{
			Search:    true,
			Diff:      true,
			Cursor:    true,
			Bookmarks: true,
		},
		Folds: FoldConfig{
			MinLines: 3,
		},
	}
}

// Validate checks configuration values that cannot be expressed by type
// alone. Reported immediately at startup, never retried.
func (c Config) Validate() error {
	if _, err := parseMode(c.Indicator.Mode); err != nil {
		return err
	}
	if _, err := parseStrategy(c.Indicator.CountStrategy); err != nil {
		return fmt.Errorf("count_strategy: %w", err)
	}
	if _, err := parseStrategy(c.Indicator.LookupStrategy); err != nil {
		return fmt.Errorf("lookup_strategy: %w", err)
	}
	if c.Indicator.CountFoldRatio < 0 || c.Indicator.LookupFoldRatio < 0 {
		return fmt.Errorf("fold ratios must be non-negative")
	}
	if c.Folds.MinLines < 2 {
		return fmt.Errorf("folds.min_lines must be at least 2, got %d", c.Folds.MinLines)
	}
	return nil
}

// EngineConfig translates the user-facing configuration into the engine's.
func (c Config) EngineConfig() (scrollview.Config, error) {
	if err := c.Validate(); err != nil {
		return scrollview.Config{}, err
	}
	mode, _ := parseMode(c.Indicator.Mode)
	countStrategy, _ := parseStrategy(c.Indicator.CountStrategy)
	lookupStrategy, _ := parseStrategy(c.Indicator.LookupStrategy)

	engineCfg := scrollview.DefaultConfig()
	engineCfg.Mode = mode
	engineCfg.SimpleThreshold = c.Indicator.SimpleThreshold
	engineCfg.IncludeEnd = c.Indicator.IncludeEnd
	engineCfg.CountStrategy = countStrategy
	engineCfg.LookupStrategy = lookupStrategy
	engineCfg.CountFoldRatio = c.Indicator.CountFoldRatio
	engineCfg.LookupFoldRatio = c.Indicator.LookupFoldRatio
	engineCfg.MaxMarkersPerRow = c.Indicator.MaxMarkersPerRow
	return engineCfg, nil
}

func parseMode(s string) (scrollview.Mode, error) {
	switch s {
	case "", "virtual":
		return scrollview.ModeVirtual, nil
	case "simple":
		return scrollview.ModeSimple, nil
	default:
		return 0, fmt.Errorf("unknown indicator mode %q (want virtual or simple)", s)
	}
}

func parseStrategy(s string) (scrollview.Strategy, error) {
	switch s {
	case "", "auto":
		return scrollview.StrategyAuto, nil
	case "spanwise":
		return scrollview.StrategySpanwise, nil
	case "linewise":
		return scrollview.StrategyLinewise, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q (want auto, spanwise, or linewise)", s)
	}
}
