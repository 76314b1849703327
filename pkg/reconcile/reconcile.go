// Package reconcile deduplicates occurrence records by catalog number and
// aggregates record counts per dataset and per publisher.
//
// Catalog numbers are compared after trimming surrounding spaces, so " B "
// and "B" identify the same record. Case and inner spaces are significant.
// Records without a catalog number are never deduplicated. For identified
// records the first occurrence of a catalog number is retained, every later
// copy is counted as a duplicate of the dataset it belongs to. Therefore
// for every dataset
//
//	total = unique + duplicates, duplicates <= total.
//
// The package is pure: it does not read files or call remote services.
package reconcile

import (
	"fmt"
	"strings"
)

// Column names of GBIF occurrence downloads used by reconciliation.
const (
	CatalogNumber = "catalogNumber"
	DatasetKey    = "datasetKey"
)

// ColumnError reports a column missing from occurrence data.
type ColumnError struct {
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("missing column %q", e.Column)
}

// Result of deduplication of one table. All slices contain row indices of
// the deduplicated table in original order.
type Result struct {
	// Total is the number of rows in the table.
	Total int

	// Retained are first occurrences of identified rows.
	Retained []int

	// Unidentified are rows with absent or empty catalog number.
	Unidentified []int

	// Duplicates are all copies of identified rows except the first one.
	Duplicates []int

	// DatasetKeys lists dataset keys in order of their first appearance.
	DatasetKeys []string

	// DatasetTotals is the number of all rows per dataset key.
	DatasetTotals map[string]int

	// DatasetDuplicates is the number of duplicate rows per dataset key.
	// Datasets without duplicates have a zero value.
	DatasetDuplicates map[string]int
}

// Unique returns the number of rows that remain after deduplication.
func (r *Result) Unique() int {
	return r.Total - len(r.Duplicates)
}

// Deduplicate groups rows of a table by catalog number and counts
// duplicates per dataset. The table must contain catalogNumber and
// datasetKey columns, otherwise ColumnError is returned.
func Deduplicate(t *Table) (*Result, error) {
	idIdx := t.Index(CatalogNumber)
	if idIdx == -1 {
		return nil, &ColumnError{Column: CatalogNumber}
	}
	dsIdx := t.Index(DatasetKey)
	if dsIdx == -1 {
		return nil, &ColumnError{Column: DatasetKey}
	}

	res := Result{
		Total:             t.Len(),
		DatasetTotals:     make(map[string]int),
		DatasetDuplicates: make(map[string]int),
	}

	seen := make(map[string]struct{})
	for i, row := range t.Rows {
		ds := row[dsIdx]
		if _, ok := res.DatasetTotals[ds]; !ok {
			res.DatasetKeys = append(res.DatasetKeys, ds)
			res.DatasetDuplicates[ds] = 0
		}
		res.DatasetTotals[ds]++

		id := strings.TrimSpace(row[idIdx])
		if id == "" {
			res.Unidentified = append(res.Unidentified, i)
			continue
		}

		if _, ok := seen[id]; ok {
			res.Duplicates = append(res.Duplicates, i)
			res.DatasetDuplicates[ds]++
			continue
		}
		seen[id] = struct{}{}
		res.Retained = append(res.Retained, i)
	}

	return &res, nil
}
