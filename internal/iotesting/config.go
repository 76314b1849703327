// Package iotesting provides shared test utilities for pipeline tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gbifreport/pkg/config"
)

// Config returns a configuration with home, archive and output directories
// inside a temporary directory of the test. The archive directory exists,
// the output directory is left for the pipeline to create. Given options are
// applied last.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    cfg := iotesting.Config(t, config.OptReconcileSQLite(true))
//	    // ... archives go to cfg.Paths.ArchiveDir
//	}
func Config(t *testing.T, opts ...config.Option) *config.Config {
	t.Helper()
	tmp := t.TempDir()

	archiveDir := filepath.Join(tmp, "zip")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		t.Fatalf("Failed to create archive dir: %v", err)
	}

	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(tmp),
		config.OptPathsArchiveDir(archiveDir),
		config.OptPathsOutputDir(filepath.Join(tmp, "output")),
	})
	cfg.Update(opts)
	return cfg
}

// WriteZip creates a ZIP archive at path with given files. Keys are names
// of files inside the archive.
//
// Usage:
//
//	iotesting.WriteZip(t, path, map[string]string{
//	    "occurrence.csv": "gbifID\tdatasetKey\tcatalogNumber\n",
//	})
func WriteZip(t *testing.T, path string, files map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create archive: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Failed to add %s to archive: %v", name, err)
		}
		if _, err = w.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write %s to archive: %v", name, err)
		}
	}
	if err = zw.Close(); err != nil {
		t.Fatalf("Failed to close archive: %v", err)
	}
}

// WriteFile writes a text file to dir and returns its path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}
