package ioreconcile

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/gbifreport/pkg/publisher"
	"github.com/gnames/gnsys"
)

// findArchives returns paths of publisher archives in dir sorted by name.
// Names are matched by prefix and suffix, so publisher names with glob
// metacharacters are found as well.
func findArchives(dir string, p publisher.Publisher) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var res []string
	for _, e := range entries {
		if e.IsDir() || !p.IsArchive(e.Name()) {
			continue
		}
		res = append(res, filepath.Join(dir, e.Name()))
	}
	return res, nil
}

// extractDir returns the directory an archive is extracted to: a sibling
// of the archive named after it.
func extractDir(zipPath string) string {
	return strings.TrimSuffix(zipPath, filepath.Ext(zipPath))
}

// extract unpacks an archive into its extraction directory. Content left
// from previous runs is removed first.
func extract(zipPath string) (string, error) {
	dir := extractDir(zipPath)
	if err := gnsys.MakeDir(dir); err != nil {
		return "", err
	}
	if err := gnsys.CleanDir(dir); err != nil {
		return "", err
	}

	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", err
	}
	defer zr.Close()

	root := filepath.Clean(dir) + string(os.PathSeparator)
	for _, f := range zr.File {
		target := filepath.Join(dir, f.Name)
		if !strings.HasPrefix(target, root) {
			return "", fmt.Errorf("illegal file path in archive: %s", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err = os.MkdirAll(target, 0755); err != nil {
				return "", err
			}
			continue
		}

		if err = extractFile(f, target); err != nil {
			return "", err
		}
	}
	return dir, nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}

	_, err = io.Copy(out, rc)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return err
}
