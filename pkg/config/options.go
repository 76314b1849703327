package config

import (
	"strings"
	"time"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptGBIFBaseURL sets the root URL of GBIF API.
func OptGBIFBaseURL(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "/")
	return func(c *Config) {
		if isValidURL("GBIF Base URL", s) {
			c.GBIF.BaseURL = s
		}
	}
}

// OptGBIFUser sets the GBIF.org account name.
func OptGBIFUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("GBIF User", s) {
			c.GBIF.User = s
		}
	}
}

// OptGBIFPassword sets the GBIF.org account password.
func OptGBIFPassword(s string) Option {
	return func(c *Config) {
		if isValidString("GBIF Password", s) {
			c.GBIF.Password = s
		}
	}
}

// OptGBIFEmail sets the address for download notifications.
func OptGBIFEmail(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("GBIF Email", s) {
			c.GBIF.Email = s
		}
	}
}

// OptGBIFTimeout sets the timeout of a single API request.
func OptGBIFTimeout(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("GBIF Timeout", d) {
			c.GBIF.Timeout = d
		}
	}
}

// OptGBIFMaxRetries sets how many times a failed request is repeated.
// Zero disables retries.
func OptGBIFMaxRetries(i int) Option {
	return func(c *Config) {
		if isValidNonNegative("GBIF Max Retries", i) {
			c.GBIF.MaxRetries = i
		}
	}
}

// OptDownloadCutoffDate sets the latest event date of exported records.
// Format: YYYY-MM-DD, YYYY-MM or YYYY.
func OptDownloadCutoffDate(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidDate("Download Cutoff Date", s) {
			c.Download.CutoffDate = s
		}
	}
}

// OptDownloadPollInterval sets the first wait between job status checks.
func OptDownloadPollInterval(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Download Poll Interval", d) {
			c.Download.PollInterval = d
		}
	}
}

// OptDownloadPollMaxInterval caps the wait between job status checks.
func OptDownloadPollMaxInterval(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Download Poll Max Interval", d) {
			c.Download.PollMaxInterval = d
		}
	}
}

// OptDownloadPollMaxWait sets the total time a download job may take.
func OptDownloadPollMaxWait(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Download Poll Max Wait", d) {
			c.Download.PollMaxWait = d
		}
	}
}

// OptLiteratureYear sets the publication year of searched literature.
func OptLiteratureYear(i int) Option {
	return func(c *Config) {
		if isValidYear("Literature Year", i) {
			c.Literature.Year = i
		}
	}
}

// OptLiteraturePageSize sets the number of results per search request.
func OptLiteraturePageSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Literature Page Size", i) {
			c.Literature.PageSize = i
		}
	}
}

// OptLiteratureRequestDelay sets the pause between search requests.
func OptLiteratureRequestDelay(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Literature Request Delay", d) {
			c.Literature.RequestDelay = d
		}
	}
}

// OptPathsArchiveDir sets the directory of downloaded archives.
func OptPathsArchiveDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Archive Directory", s) {
			c.Paths.ArchiveDir = s
		}
	}
}

// OptPathsOutputDir sets the directory of generated reports.
func OptPathsOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output Directory", s) {
			c.Paths.OutputDir = s
		}
	}
}

// OptReconcileFilePattern sets the glob pattern of tab-delimited files
// read from extracted archives.
func OptReconcileFilePattern(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidPattern("Reconcile File Pattern", s) {
			c.Reconcile.FilePattern = s
		}
	}
}

// OptReconcileSQLite enables SQLite copy of reconciled tables.
func OptReconcileSQLite(b bool) Option {
	return func(c *Config) {
		c.Reconcile.SQLite = b
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptPublishersFile overrides the location of publishers.yaml.
// Runtime-only field - not in ToOptions().
func OptPublishersFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Publishers File", s) {
			c.PublishersFile = s
		}
	}
}

// OptHomeDir sets the home directory for config and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
