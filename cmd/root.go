package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ofseed/nvim-scrollview/internal/config"
	"github.com/ofseed/nvim-scrollview/internal/doc"
	"github.com/ofseed/nvim-scrollview/internal/infrastructure/sqlite"
	"github.com/ofseed/nvim-scrollview/internal/log"
	"github.com/ofseed/nvim-scrollview/internal/pubsub"
	"github.com/ofseed/nvim-scrollview/internal/ui/pager"
	"github.com/ofseed/nvim-scrollview/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	debug   bool
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "scrollview <file>",
	Short:   "A file pager with a fold-aware position indicator",
	Long: `A terminal file pager that renders a scrollbar thumb and marker column
along the right edge. Closed folds collapse to a single row, and the thumb
position accounts for them, so the indicator tracks what is actually on
screen rather than raw line numbers.`,
	Version: version,
	Args:    cobra.ExactArgs(1),
	RunE:    runPager,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/scrollview/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false,
		"write a debug log to scrollview-debug.log")
	rootCmd.Flags().Bool("no-auto-reload", false,
		"disable reloading the file when it changes on disk")
	rootCmd.Flags().String("bookmark-db", "",
		"path to the bookmark database (default: ~/.local/share/scrollview/bookmarks.db)")

	_ = viper.BindPFlag("bookmark_db", rootCmd.Flags().Lookup("bookmark-db"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("auto_reload", defaults.AutoReload)
	viper.SetDefault("reload_debounce", defaults.ReloadDebounce)
	viper.SetDefault("refresh_debounce", defaults.RefreshDebounce)
	viper.SetDefault("indicator.mode", defaults.Indicator.Mode)
	viper.SetDefault("indicator.simple_threshold", defaults.Indicator.SimpleThreshold)
	viper.SetDefault("indicator.include_end", defaults.Indicator.IncludeEnd)
	viper.SetDefault("indicator.count_strategy", defaults.Indicator.CountStrategy)
	viper.SetDefault("indicator.lookup_strategy", defaults.Indicator.LookupStrategy)
	viper.SetDefault("indicator.count_fold_ratio", defaults.Indicator.CountFoldRatio)
	viper.SetDefault("indicator.lookup_fold_ratio", defaults.Indicator.LookupFoldRatio)
	viper.SetDefault("indicator.character", defaults.Indicator.Character)
	viper.SetDefault("indicator.track_character", defaults.Indicator.TrackCharacter)
	viper.SetDefault("indicator.max_markers_per_row", defaults.Indicator.MaxMarkersPerRow)
	viper.SetDefault("markers.search", defaults.Markers.Search)
	viper.SetDefault("markers.diff", defaults.Markers.Diff)
	viper.SetDefault("markers.cursor", defaults.Markers.Cursor)
	viper.SetDefault("markers.bookmarks", defaults.Markers.Bookmarks)
	viper.SetDefault("folds.min_lines", defaults.Folds.MinLines)
	viper.SetDefault("folds.close_on_open", defaults.Folds.CloseOnOpen)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, _ := os.UserHomeDir()
		viper.AddConfigPath(filepath.Join(home, ".config", "scrollview"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// Missing config files are fine; everything has a default.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "warning: reading config: %v\n", err)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runPager(cmd *cobra.Command, args []string) error {
	if debug || os.Getenv("SCROLLVIEW_DEBUG") != "" {
		cleanup, err := log.InitWithTeaLog("scrollview-debug.log", "scrollview")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer cleanup()
	}

	if noReload, _ := cmd.Flags().GetBool("no-auto-reload"); noReload {
		cfg.AutoReload = false
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	path := args[0]
	document, err := doc.Load(path)
	if err != nil {
		return err
	}

	db, err := openBookmarkDB()
	if err != nil {
		// The pager is still useful without persistent bookmarks.
		log.ErrorErr(log.CatDB, "bookmark database unavailable, using in-memory store", err)
		if db, err = sqlite.NewMemoryDB(); err != nil {
			return fmt.Errorf("opening bookmark store: %w", err)
		}
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Mouse zones for the indicator column.
	zone.NewGlobal()
	defer zone.Close()

	var reload *pubsub.Broker[string]
	if cfg.AutoReload {
		w, err := watcher.New(watcher.Config{
			FilePath:    path,
			DebounceDur: cfg.ReloadDebounce,
		})
		if err != nil {
			return fmt.Errorf("starting file watcher: %w", err)
		}
		changes, err := w.Start()
		if err != nil {
			return fmt.Errorf("starting file watcher: %w", err)
		}
		defer func() { _ = w.Stop() }()

		reload = pubsub.NewBroker[string]()
		defer reload.Close()
		go func() {
			for range changes {
				reload.Publish(pubsub.ChangedEvent, path)
			}
		}()
	}

	model, err := pager.New(ctx, pager.Options{
		Config:   cfg,
		Document: document,
		Store:    db.Bookmarks(),
		Reload:   reload,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// openBookmarkDB opens the configured bookmark database, defaulting to a
// per-user data directory.
func openBookmarkDB() (*sqlite.DB, error) {
	dbPath := cfg.BookmarkDB
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".local", "share", "scrollview", "bookmarks.db")
	}
	return sqlite.NewDB(dbPath)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
