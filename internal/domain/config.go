package domain

// Config holds the complete mediadex configuration.
type Config struct {
	// DatabasePath is the SQLite store file.
	DatabasePath string `json:"databasePath"`

	// ExportDir receives timestamped CSV exports.
	ExportDir string `json:"exportDir"`

	// CoversDir is where imported cover images are copied.
	CoversDir string `json:"coversDir"`

	Logging LoggingConfig `json:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // text, json
}

// DefaultConfig returns the defaults for a catalog kept in the working
// directory: the store file next to the process, exports beside it, covers
// under ./covers.
func DefaultConfig() *Config {
	return &Config{
		DatabasePath: "./media_catalog.sqlite",
		ExportDir:    ".",
		CoversDir:    "./covers",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
