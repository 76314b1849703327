package ioliterature

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/gnames/gbifreport/pkg/config"
	"github.com/gnames/gbifreport/pkg/literature"
)

// readDatasets reads dataset metadata from a dataset counts file.
// Returns all rows and distinct non-empty dataset keys in order of their
// first appearance.
func readDatasets(path string) ([]literature.Dataset, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, errors.New("file is empty")
	}
	if err != nil {
		return nil, nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	keyIdx := slices.Index(header, "datasetKey")
	if keyIdx == -1 {
		return nil, nil, fmt.Errorf("missing column %q", "datasetKey")
	}
	pubIdx := slices.Index(header, "publisher")
	nameIdx := slices.Index(header, "datasetName")

	var meta []literature.Dataset
	var keys []string
	seen := make(map[string]struct{})
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		key := strings.TrimSpace(field(row, keyIdx))
		if key == "" {
			continue
		}
		meta = append(meta, literature.Dataset{
			Key:       key,
			Publisher: orNA(field(row, pubIdx)),
			Name:      orNA(field(row, nameIdx)),
		})
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return meta, keys, nil
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func orNA(s string) string {
	if s == "" {
		return config.NotAvailable
	}
	return s
}
