// Package config provides configuration management for GBIFreport.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// Before the config file is read, .env and .env.local files from the current
// directory are loaded into the environment.
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - GBIF: base_url, user, password, email, timeout, max_retries
//   - Download: cutoff_date, poll_interval, poll_max_interval, poll_max_wait
//   - Literature: year, page_size, request_delay
//   - Paths: archive_dir, output_dir
//   - Reconcile: file_pattern, sqlite
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - PublishersFile (per-command override of publishers.yaml)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GBIFREPORT_ prefix with underscores for nesting:
//
//	GBIFREPORT_GBIF_USER=jdoe
//	GBIFREPORT_DOWNLOAD_CUTOFF_DATE=2024-12-31
//	GBIFREPORT_PATHS_ARCHIVE_DIR=/data/gbif/zip
//	GBIFREPORT_LOG_LEVEL=info
//
// Variable names used by the older Python scripts (GBIF_USER, GBIF_PASSWORD,
// GBIF_EMAIL, MAX_DATE, ZIP_FOLDER_PATH, OUTPUT_FOLDER_PATH) are accepted
// as aliases.
package config

import (
	"time"
)

// Config represents the complete GBIFreport configuration.
type Config struct {
	// GBIF contains API access settings.
	GBIF GBIFConfig `mapstructure:"gbif" yaml:"gbif"`

	// Download contains settings of the download command.
	Download DownloadConfig `mapstructure:"download" yaml:"download"`

	// Literature contains settings of the literature command.
	Literature LiteratureConfig `mapstructure:"literature" yaml:"literature"`

	// Paths determines where archives are stored and reports are written.
	Paths PathsConfig `mapstructure:"paths" yaml:"paths"`

	// Reconcile contains settings of the reconcile command.
	Reconcile ReconcileConfig `mapstructure:"reconcile" yaml:"reconcile"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// PublishersFile overrides the location of publishers.yaml.
	// Empty means ~/.config/gbifreport/publishers.yaml.
	PublishersFile string

	// HomeDir determines where config and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// GBIFConfig contains GBIF API access parameters.
type GBIFConfig struct {
	// BaseURL is the root of GBIF API, including version.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// User is the GBIF.org account name. Required for downloads only.
	User string `mapstructure:"user" yaml:"user"`

	// Password of the GBIF.org account. Sent as HTTP basic auth.
	Password string `mapstructure:"password" yaml:"password"`

	// Email receives GBIF notifications about finished downloads.
	Email string `mapstructure:"email" yaml:"email"`

	// Timeout limits a single HTTP request. Archive transfers are not limited.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// MaxRetries is the number of transport-level retries of a failed request.
	MaxRetries int `mapstructure:"max_retries" yaml:"max_retries"`
}

// DownloadConfig contains settings for requesting occurrence archives.
type DownloadConfig struct {
	// CutoffDate is the latest event date of exported records
	// (YYYY-MM-DD, YYYY-MM or YYYY).
	CutoffDate string `mapstructure:"cutoff_date" yaml:"cutoff_date"`

	// PollInterval is the first wait between status checks of a download job.
	PollInterval time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`

	// PollMaxInterval caps the exponential growth of the wait.
	PollMaxInterval time.Duration `mapstructure:"poll_max_interval" yaml:"poll_max_interval"`

	// PollMaxWait is the total time given to a download job to succeed.
	PollMaxWait time.Duration `mapstructure:"poll_max_wait" yaml:"poll_max_wait"`
}

// LiteratureConfig contains settings for literature search.
type LiteratureConfig struct {
	// Year of publication of searched literature.
	Year int `mapstructure:"year" yaml:"year"`

	// PageSize is the limit of results returned by one search request.
	PageSize int `mapstructure:"page_size" yaml:"page_size"`

	// RequestDelay is the fixed pause between search requests.
	RequestDelay time.Duration `mapstructure:"request_delay" yaml:"request_delay"`
}

// PathsConfig contains input and output locations.
type PathsConfig struct {
	// ArchiveDir keeps downloaded ZIP archives and their extractions.
	ArchiveDir string `mapstructure:"archive_dir" yaml:"archive_dir"`

	// OutputDir receives CSV, SQLite and XLSX reports.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
}

// ReconcileConfig contains settings for archive reconciliation.
type ReconcileConfig struct {
	// FilePattern selects tab-delimited files inside extracted archives.
	FilePattern string `mapstructure:"file_pattern" yaml:"file_pattern"`

	// SQLite, when true, also saves reconciled tables to reconcile.sqlite.
	SQLite bool `mapstructure:"sqlite" yaml:"sqlite"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		GBIF: GBIFConfig{
			BaseURL:    "https://api.gbif.org/v1",
			Timeout:    60 * time.Second,
			MaxRetries: 3,
		},
		Download: DownloadConfig{
			CutoffDate:      defaultCutoffDate(),
			PollInterval:    30 * time.Second,
			PollMaxInterval: 5 * time.Minute,
			PollMaxWait:     6 * time.Hour,
		},
		Literature: LiteratureConfig{
			Year:         time.Now().Year() - 1,
			PageSize:     300,
			RequestDelay: time.Second,
		},
		Paths: PathsConfig{
			ArchiveDir: "zip",
			OutputDir:  "output",
		},
		Reconcile: ReconcileConfig{
			FilePattern: "*.csv",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// records are appended to the log file
			Destination: "file",
		},
	}

	return res
}

// defaultCutoffDate is the last day of the previous year, annual reports
// cover complete years.
func defaultCutoffDate() string {
	year := time.Now().Year() - 1
	return time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC).Format(time.DateOnly)
}
