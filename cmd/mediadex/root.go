package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mediadex/internal/config"
	"mediadex/internal/domain"
	"mediadex/internal/repository"
)

// Version information (set via ldflags)
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

var (
	cfg  *domain.Config
	repo domain.Repository
)

var (
	flagDB        string
	flagLogLevel  string
	flagLogFormat string
)

var rootCmd = &cobra.Command{
	Use:   "mediadex",
	Short: "Personal media catalog",
	Long: `mediadex keeps a personal catalog of books, movies, games and music in a
single SQLite file: filtered listings, whole-catalog stats, smart filters
and CSV export.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if flagDB != "" {
			cfg.DatabasePath = flagDB
		}
		if flagLogLevel != "" {
			cfg.Logging.Level = flagLogLevel
		}
		if flagLogFormat != "" {
			cfg.Logging.Format = flagLogFormat
		}
		setupLogger(cfg.Logging)

		slog.Debug("starting mediadex",
			"version", Version,
			"commit", Commit,
			"build_date", BuildDate,
		)
		slog.Debug("configuration loaded",
			"db", cfg.DatabasePath,
			"export_dir", cfg.ExportDir,
			"covers_dir", cfg.CoversDir,
		)

		r, err := repository.New(domain.RepositoryConfig{Path: cfg.DatabasePath})
		if err != nil {
			return fmt.Errorf("failed to open catalog: %w", err)
		}
		if err := r.Init(cmd.Context()); err != nil {
			r.Close()
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
		repo = r

		slog.Debug("repository initialized", "path", cfg.DatabasePath)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if repo != nil {
			repo.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "catalog file (default ./media_catalog.sqlite, env MEDIADEX_DB)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log format: text, json")
}

// setupLogger installs the default slog logger. Logs go to stderr so that
// command output on stdout stays machine-readable.
func setupLogger(lc domain.LoggingConfig) {
	level := slog.LevelInfo
	switch strings.ToLower(lc.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.ToLower(lc.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
