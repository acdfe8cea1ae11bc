// Package config loads the mediadex configuration from the environment.
package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"mediadex/internal/domain"
)

// Load builds the configuration from defaults overlaid by a .env file (if
// one exists in the working directory) and process environment variables.
// Every variable carries the MEDIADEX_ prefix: MEDIADEX_DB,
// MEDIADEX_EXPORT_DIR, MEDIADEX_COVERS_DIR, MEDIADEX_LOG_LEVEL,
// MEDIADEX_LOG_FORMAT.
func Load() *domain.Config {
	// A missing .env is fine; the process environment still applies.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("MEDIADEX")
	v.AutomaticEnv()

	defaults := domain.DefaultConfig()
	v.SetDefault("db", defaults.DatabasePath)
	v.SetDefault("export_dir", defaults.ExportDir)
	v.SetDefault("covers_dir", defaults.CoversDir)
	v.SetDefault("log_level", defaults.Logging.Level)
	v.SetDefault("log_format", defaults.Logging.Format)

	return &domain.Config{
		DatabasePath: v.GetString("db"),
		ExportDir:    v.GetString("export_dir"),
		CoversDir:    v.GetString("covers_dir"),
		Logging: domain.LoggingConfig{
			Level:  v.GetString("log_level"),
			Format: v.GetString("log_format"),
		},
	}
}
