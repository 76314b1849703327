package ioreconcile

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gnames/gbifreport/pkg/reconcile"
)

var requiredColumns = []string{reconcile.CatalogNumber, reconcile.DatasetKey}

// dataFiles returns files of an extraction directory matching pattern,
// sorted by name.
func dataFiles(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var res []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ok, err := filepath.Match(pattern, e.Name())
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, filepath.Join(dir, e.Name()))
		}
	}
	return res, nil
}

// maxLineSize limits the length of one line of occurrence data.
const maxLineSize = 16 * 1024 * 1024

// readTable reads a tab-delimited file with a header row. All values are
// kept as text. Fields are never quoted, so quote characters are kept as
// they are. Blank lines are skipped.
func readTable(path string) (*reconcile.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var res *reconcile.Table
	var lineNum int
	for sc.Scan() {
		lineNum++
		line := strings.TrimSuffix(sc.Text(), "\r")
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if res == nil {
			res = reconcile.NewTable(fields...)
			continue
		}
		res.Append(fields)
	}
	if err = sc.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", lineNum+1, err)
	}

	if res == nil {
		return reconcile.NewTable(), nil
	}
	return res, nil
}

// missingColumn returns the first required column absent from the table,
// or an empty string.
func missingColumn(t *reconcile.Table) string {
	for _, col := range requiredColumns {
		if !slices.Contains(t.Columns, col) {
			return col
		}
	}
	return ""
}
