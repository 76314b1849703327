// Package iofs manages application directories, embedded configuration
// templates and atomic writing of report files.
package iofs

import (
	_ "embed"
	"io"
	"os"
	"path/filepath"

	"github.com/gnames/gbifreport/pkg/config"
	"github.com/gnames/gnsys"
)

//go:embed config.yaml
var ConfigYAML string

//go:embed publishers.yaml
var PublishersYAML string

// EnsureDirs creates configuration and log directories.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

// EnsureDir creates a working directory (archives, reports) if it
// does not exist.
func EnsureDir(dir string) error {
	return touchDir(dir)
}

func touchDir(dir string) error {
	if err := gnsys.MakeDir(dir); err != nil {
		return CreateDirError(dir, err)
	}
	return nil
}

// EnsureConfigFile writes the default config.yaml if the file does not
// exist yet.
func EnsureConfigFile(homeDir string) error {
	return ensureFile(config.ConfigFilePath(homeDir), ConfigYAML)
}

// EnsurePublishersFile writes an example publishers.yaml if the file
// does not exist yet.
func EnsurePublishersFile(homeDir string) error {
	return ensureFile(config.PublishersFilePath(homeDir), PublishersYAML)
}

func ensureFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return TemplateFileError(path, err)
	}
	return nil
}

// WriteFile writes a file through a temporary sibling that replaces the
// target only after write succeeded. On error the previous content of the
// target stays untouched.
func WriteFile(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return WriteFileError(path, err)
	}
	tmpPath := tmp.Name()

	err = write(tmp)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmpPath, 0644)
	}
	if err == nil {
		err = os.Rename(tmpPath, path)
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return WriteFileError(path, err)
	}
	return nil
}
