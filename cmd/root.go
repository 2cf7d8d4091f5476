// Package cmd implements the cfoot CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/cfoot/internal/config"
	"github.com/theirongolddev/cfoot/internal/store"
	"github.com/theirongolddev/cfoot/internal/tui/theme"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	flagConfig   string
	flagDB       string
	flagLogLevel string
	flagQuiet    bool
)

// appCfg is the configuration loaded before any command runs.
var appCfg = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "cfoot",
	Short: "Personal carbon footprint estimator",
	Long: "Estimate your monthly carbon footprint from travel, electricity, food and shopping,\n" +
		"compare it with the US average, and keep a history of past estimates.",
	SilenceUsage:      true,
	PersistentPreRunE: loadRuntime,
	RunE:              runEstimate,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default $XDG_CONFIG_HOME/cfoot/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "History database path")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress informational output")
	addEstimateFlags(rootCmd)
}

// loadRuntime loads .env and the config file, then sets up logging and the
// theme for whichever command runs.
func loadRuntime(_ *cobra.Command, _ []string) error {
	// A missing .env is normal.
	_ = godotenv.Load()

	if flagConfig != "" {
		if err := os.Setenv("CFOOT_CONFIG", flagConfig); err != nil {
			return fmt.Errorf("setting config path: %w", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	config.InitLogger(level)
	theme.SetActive(cfg.Appearance.Theme)

	appCfg = cfg
	log.Debug().Str("config", config.ConfigPath()).Str("level", level).Msg("runtime loaded")
	return nil
}

// historyPath resolves the history database: --db flag first, then env
// and config.
func historyPath() string {
	if flagDB != "" {
		return flagDB
	}
	return config.HistoryPath(appCfg)
}

func openHistory() (*store.History, error) {
	h, err := store.Open(historyPath())
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	return h, nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the stdout width, capped for readable reports.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 72
	}
	if width > 96 {
		return 96
	}
	return width - 4
}

func infof(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Printf(format, args...)
}
