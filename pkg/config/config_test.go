package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/gnames/gbifreport/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "gbifreport"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "gbifreport", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "gbifreport", "config.yaml"),
		},
		{
			msg: "publishers file",
			fn:  config.PublishersFilePath,
			res: filepath.Join(tempHome, ".config", "gbifreport", "publishers.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		// GBIF defaults
		assert.Equal(t, "https://api.gbif.org/v1", cfg.GBIF.BaseURL)
		assert.Equal(t, 60*time.Second, cfg.GBIF.Timeout)
		assert.Equal(t, 3, cfg.GBIF.MaxRetries)
		assert.Empty(t, cfg.GBIF.User)

		// Download defaults
		lastYear := time.Now().Year() - 1
		assert.Equal(t,
			time.Date(lastYear, 12, 31, 0, 0, 0, 0, time.UTC).Format(time.DateOnly),
			cfg.Download.CutoffDate)
		assert.Equal(t, 30*time.Second, cfg.Download.PollInterval)
		assert.Equal(t, 5*time.Minute, cfg.Download.PollMaxInterval)
		assert.Equal(t, 6*time.Hour, cfg.Download.PollMaxWait)

		// Literature defaults
		assert.Equal(t, lastYear, cfg.Literature.Year)
		assert.Equal(t, 300, cfg.Literature.PageSize)
		assert.Equal(t, time.Second, cfg.Literature.RequestDelay)

		assert.Equal(t, "*.csv", cfg.Reconcile.FilePattern)
		assert.False(t, cfg.Reconcile.SQLite)

		// Log defaults
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)
	})
}

func TestOptionGBIFBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid URL",
			input:    "http://localhost:8080/v1",
			expected: "http://localhost:8080/v1",
		},
		{
			name:     "trims trailing slash",
			input:    " https://api.gbif-uat.org/v1/ ",
			expected: "https://api.gbif-uat.org/v1",
		},
		{
			name:     "ignores non-http scheme",
			input:    "ftp://api.gbif.org/v1",
			expected: "https://api.gbif.org/v1",
		},
		{
			name:     "ignores empty string",
			input:    "",
			expected: "https://api.gbif.org/v1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptGBIFBaseURL(tt.input)})
			assert.Equal(t, tt.expected, cfg.GBIF.BaseURL)
		})
	}
}

func TestOptionDownloadCutoffDate(t *testing.T) {
	def := config.New().Download.CutoffDate

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid date",
			input:    "2024-12-31",
			expected: "2024-12-31",
		},
		{
			name:     "trims whitespace",
			input:    "  2023-06-30 ",
			expected: "2023-06-30",
		},
		{
			name:     "sets year and month",
			input:    "2024-06",
			expected: "2024-06",
		},
		{
			name:     "sets year",
			input:    "2024",
			expected: "2024",
		},
		{
			name:     "ignores date range",
			input:    "2020,2024",
			expected: def,
		},
		{
			name:     "ignores wrong format",
			input:    "31/12/2024",
			expected: def,
		},
		{
			name:     "ignores impossible date",
			input:    "2024-02-31",
			expected: def,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptDownloadCutoffDate(tt.input)})
			assert.Equal(t, tt.expected, cfg.Download.CutoffDate)
		})
	}
}

func TestOptionDurations(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDownloadPollInterval(time.Second),
		config.OptDownloadPollMaxInterval(0),
		config.OptDownloadPollMaxWait(-time.Minute),
		config.OptLiteratureRequestDelay(10 * time.Millisecond),
		config.OptGBIFTimeout(5 * time.Second),
	})

	assert.Equal(t, time.Second, cfg.Download.PollInterval)
	assert.Equal(t, 5*time.Minute, cfg.Download.PollMaxInterval,
		"zero duration should be ignored")
	assert.Equal(t, 6*time.Hour, cfg.Download.PollMaxWait,
		"negative duration should be ignored")
	assert.Equal(t, 10*time.Millisecond, cfg.Literature.RequestDelay)
	assert.Equal(t, 5*time.Second, cfg.GBIF.Timeout)
}

func TestOptionLiterature(t *testing.T) {
	tests := []struct {
		name     string
		opts     []config.Option
		year     int
		pageSize int
	}{
		{
			name:     "valid values",
			opts:     []config.Option{config.OptLiteratureYear(2024), config.OptLiteraturePageSize(100)},
			year:     2024,
			pageSize: 100,
		},
		{
			name:     "ignores invalid year and zero page",
			opts:     []config.Option{config.OptLiteratureYear(24), config.OptLiteraturePageSize(0)},
			year:     time.Now().Year() - 1,
			pageSize: 300,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update(tt.opts)
			assert.Equal(t, tt.year, cfg.Literature.Year)
			assert.Equal(t, tt.pageSize, cfg.Literature.PageSize)
		})
	}
}

func TestOptionGBIFMaxRetries(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptGBIFMaxRetries(0)})
	assert.Equal(t, 0, cfg.GBIF.MaxRetries, "zero disables retries")

	cfg.Update([]config.Option{config.OptGBIFMaxRetries(-1)})
	assert.Equal(t, 0, cfg.GBIF.MaxRetries, "negative is ignored")
}

func TestOptionReconcileFilePattern(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptReconcileFilePattern("[")})
	assert.Equal(t, "*.csv", cfg.Reconcile.FilePattern,
		"malformed pattern should be ignored")

	cfg.Update([]config.Option{config.OptReconcileFilePattern("*.txt")})
	assert.Equal(t, "*.txt", cfg.Reconcile.FilePattern)
}

func TestOptionLogEnums(t *testing.T) {
	tests := []struct {
		name   string
		opt    config.Option
		getter func(*config.Config) string
		want   string
	}{
		{"valid level", config.OptLogLevel("DEBUG"), func(c *config.Config) string { return c.Log.Level }, "debug"},
		{"invalid level", config.OptLogLevel("verbose"), func(c *config.Config) string { return c.Log.Level }, "info"},
		{"valid format", config.OptLogFormat("text"), func(c *config.Config) string { return c.Log.Format }, "text"},
		{"invalid format", config.OptLogFormat("xml"), func(c *config.Config) string { return c.Log.Format }, "json"},
		{"valid destination", config.OptLogDestination("stderr"), func(c *config.Config) string { return c.Log.Destination }, "stderr"},
		{"invalid destination", config.OptLogDestination("stdin"), func(c *config.Config) string { return c.Log.Destination }, "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt})
			assert.Equal(t, tt.want, tt.getter(cfg))
		})
	}
}

func TestPublishersPath(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir("/home/jdoe")})
	assert.Equal(t,
		filepath.Join("/home/jdoe", ".config", "gbifreport", "publishers.yaml"),
		cfg.PublishersPath())

	cfg.Update([]config.Option{config.OptPublishersFile("./danish.yaml")})
	assert.Equal(t, "./danish.yaml", cfg.PublishersPath())
}

func TestLiteratureWorkbookFile(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptLiteratureYear(2024)})
	assert.Equal(t, "gbif_publications_2024.xlsx", cfg.LiteratureWorkbookFile())
}

// TestToOptions_RoundTrip verifies persistent fields survive conversion
// to options and back.
func TestToOptions_RoundTrip(t *testing.T) {
	src := config.New()
	src.Update([]config.Option{
		config.OptGBIFUser("jdoe"),
		config.OptGBIFPassword("secret"),
		config.OptGBIFEmail("jdoe@example.org"),
		config.OptDownloadCutoffDate("2024-12-31"),
		config.OptLiteratureYear(2024),
		config.OptPathsArchiveDir("/data/zip"),
		config.OptPathsOutputDir("/data/out"),
		config.OptReconcileSQLite(true),
		config.OptLogLevel("debug"),
		config.OptHomeDir("/home/jdoe"),
		config.OptPublishersFile("/tmp/p.yaml"),
	})

	dst := config.New()
	dst.Update(src.ToOptions())

	assert.Equal(t, src.GBIF, dst.GBIF)
	assert.Equal(t, src.Download, dst.Download)
	assert.Equal(t, src.Literature, dst.Literature)
	assert.Equal(t, src.Paths, dst.Paths)
	assert.Equal(t, src.Reconcile, dst.Reconcile)
	assert.Equal(t, src.Log, dst.Log)

	// runtime-only fields are not persisted
	assert.Empty(t, dst.HomeDir)
	assert.Empty(t, dst.PublishersFile)
}
