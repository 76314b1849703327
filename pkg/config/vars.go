package config

import (
	"path/filepath"
	"strconv"
)

var (
	// AppName is used in generating file system paths.
	AppName = "gbifreport"

	// UnknownDataset is the dataset title used when GBIF registry lookup fails.
	UnknownDataset = "Unknown Dataset"

	// NotAvailable replaces missing values of literature records.
	NotAvailable = "N/A"
)

// Names of generated report files.
const (
	DatasetCountsFile = "all_publishers_dataset_counts.csv"
	SummaryFile       = "all_publishers_summary.csv"
	DuplicatesFile    = "duplicate_occurrences.csv"
	ReconcileDBFile   = "reconcile.sqlite"
	LiteratureCSVFile = "gbif_publications.csv"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gbifreport by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/gbifreport/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/gbifreport/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// PublishersFilePath returns the full path to the publishers.yaml file.
// Returns ~/.config/gbifreport/publishers.yaml by default.
func PublishersFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "publishers.yaml")
}

// PublishersPath returns PublishersFile if it is set, otherwise
// the default publishers.yaml location.
func (c *Config) PublishersPath() string {
	if c.PublishersFile != "" {
		return c.PublishersFile
	}
	return PublishersFilePath(c.HomeDir)
}

// LiteratureWorkbookFile returns the name of the literature workbook
// for the configured year.
func (c *Config) LiteratureWorkbookFile() string {
	return "gbif_publications_" + strconv.Itoa(c.Literature.Year) + ".xlsx"
}
