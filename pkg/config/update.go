package config

import (
	"fmt"
	"maps"
	"net/url"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, PublishersFile).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int
	var d time.Duration

	s = c.GBIF.BaseURL
	if s != "" {
		res = append(res, OptGBIFBaseURL(s))
	}
	s = c.GBIF.User
	if s != "" {
		res = append(res, OptGBIFUser(s))
	}
	s = c.GBIF.Password
	if s != "" {
		res = append(res, OptGBIFPassword(s))
	}
	s = c.GBIF.Email
	if s != "" {
		res = append(res, OptGBIFEmail(s))
	}
	d = c.GBIF.Timeout
	if d > 0 {
		res = append(res, OptGBIFTimeout(d))
	}
	i = c.GBIF.MaxRetries
	if i > 0 {
		res = append(res, OptGBIFMaxRetries(i))
	}

	s = c.Download.CutoffDate
	if s != "" {
		res = append(res, OptDownloadCutoffDate(s))
	}
	d = c.Download.PollInterval
	if d > 0 {
		res = append(res, OptDownloadPollInterval(d))
	}
	d = c.Download.PollMaxInterval
	if d > 0 {
		res = append(res, OptDownloadPollMaxInterval(d))
	}
	d = c.Download.PollMaxWait
	if d > 0 {
		res = append(res, OptDownloadPollMaxWait(d))
	}

	i = c.Literature.Year
	if i > 0 {
		res = append(res, OptLiteratureYear(i))
	}
	i = c.Literature.PageSize
	if i > 0 {
		res = append(res, OptLiteraturePageSize(i))
	}
	d = c.Literature.RequestDelay
	if d > 0 {
		res = append(res, OptLiteratureRequestDelay(d))
	}

	s = c.Paths.ArchiveDir
	if s != "" {
		res = append(res, OptPathsArchiveDir(s))
	}
	s = c.Paths.OutputDir
	if s != "" {
		res = append(res, OptPathsOutputDir(s))
	}

	s = c.Reconcile.FilePattern
	if s != "" {
		res = append(res, OptReconcileFilePattern(s))
	}
	if c.Reconcile.SQLite {
		res = append(res, OptReconcileSQLite(true))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidNonNegative(name string, i int) bool {
	res := i >= 0
	if !res {
		gn.Warn("<em>%s</em> cannot be negative, ignoring %d", name, i)
	}
	return res
}

func isValidYear(name string, i int) bool {
	res := i >= 1700 && i <= 9999
	if !res {
		gn.Warn("<em>%s</em> is not a valid year, ignoring %d", name, i)
	}
	return res
}

func isValidDuration(name string, d time.Duration) bool {
	res := d > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive duration, ignoring %s", name, d)
	}
	return res
}

// dateLayouts are ISO 8601 dates accepted by GBIF occurrence predicates.
var dateLayouts = []string{time.DateOnly, "2006-01", "2006"}

func isValidDate(name, s string) bool {
	for _, l := range dateLayouts {
		if _, err := time.Parse(l, s); err == nil {
			return true
		}
	}
	gn.Warn("<em>%s</em> has to be YYYY-MM-DD, YYYY-MM or YYYY, ignoring '%s'", name, s)
	return false
}

func isValidURL(name, s string) bool {
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		gn.Warn("<em>%s</em> is not a valid http(s) URL, ignoring '%s'", name, s)
		return false
	}
	return true
}

func isValidPattern(name, s string) bool {
	if s == "" {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
		return false
	}
	if _, err := filepath.Match(s, ""); err != nil {
		gn.Warn("<em>%s</em> is not a valid file pattern, ignoring '%s'", name, s)
		return false
	}
	return true
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	} else {
		gn.Warn(
			"<em>%s</em> does not support '%s' as a value. "+
				"Valid values are: \n%s\nIgnoring...",
			name, val, strings.Join(lines, "\n"),
		)
		return false
	}
}
