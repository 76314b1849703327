package reconcile_test

import (
	"testing"

	"github.com/gnames/gbifreport/pkg/reconcile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func occurrences(rows ...[2]string) *reconcile.Table {
	t := reconcile.NewTable("gbifID", reconcile.CatalogNumber, reconcile.DatasetKey)
	for i, r := range rows {
		t.Append([]string{string(rune('a' + i)), r[0], r[1]})
	}
	return t
}

// TestDeduplicate_FirstOccurrence verifies that the first copy of a catalog
// number is retained and later copies are duplicates.
func TestDeduplicate_FirstOccurrence(t *testing.T) {
	tbl := occurrences(
		[2]string{"A", "ds1"},
		[2]string{"B", "ds1"},
		[2]string{"A", "ds1"},
		[2]string{"C", "ds1"},
		[2]string{"B", "ds1"},
	)

	res, err := reconcile.Deduplicate(tbl)
	require.NoError(t, err)

	assert.Equal(t, 5, res.Total)
	assert.Equal(t, []int{0, 1, 3}, res.Retained)
	assert.Equal(t, []int{2, 4}, res.Duplicates)
	assert.Empty(t, res.Unidentified)
	assert.Equal(t, 3, res.Unique())
	assert.Equal(t, 5, res.DatasetTotals["ds1"])
	assert.Equal(t, 2, res.DatasetDuplicates["ds1"])
}

// TestDeduplicate_TrimmedCatalogNumber verifies that only surrounding
// spaces are ignored when catalog numbers are compared.
func TestDeduplicate_TrimmedCatalogNumber(t *testing.T) {
	tbl := occurrences(
		[2]string{"NHMD 123", "ds1"},
		[2]string{" NHMD 123\t", "ds2"},
		[2]string{"nhmd 123", "ds2"},
		[2]string{"NHMD  123", "ds2"},
	)

	res, err := reconcile.Deduplicate(tbl)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, res.Duplicates)
	assert.Equal(t, []int{0, 2, 3}, res.Retained)
	assert.Equal(t, 1, res.DatasetDuplicates["ds2"])
}

// TestDeduplicate_Unidentified verifies that rows without catalog number
// are never treated as duplicates.
func TestDeduplicate_Unidentified(t *testing.T) {
	tbl := occurrences(
		[2]string{"", "ds1"},
		[2]string{"  ", "ds1"},
		[2]string{"", "ds2"},
		[2]string{"X", "ds1"},
		[2]string{"Y", "ds2"},
	)

	res, err := reconcile.Deduplicate(tbl)
	require.NoError(t, err)

	assert.Equal(t, 5, res.Total)
	assert.Empty(t, res.Duplicates)
	assert.Len(t, res.Unidentified, 3)
	assert.Equal(t, 0, res.DatasetDuplicates["ds1"])
	assert.Equal(t, 0, res.DatasetDuplicates["ds2"])
	assert.Equal(t, 3, res.DatasetTotals["ds1"])
	assert.Equal(t, 2, res.DatasetTotals["ds2"])
}

// TestDeduplicate_CountsBalance verifies unique and duplicate counts add up
// to the total for every dataset.
func TestDeduplicate_CountsBalance(t *testing.T) {
	tests := []struct {
		msg  string
		rows [][2]string
	}{
		{"empty", nil},
		{"no duplicates", [][2]string{{"A", "d1"}, {"B", "d2"}}},
		{"across datasets", [][2]string{{"A", "d1"}, {"A", "d2"}, {"A", "d2"}, {"", "d1"}}},
		{"all same", [][2]string{{"Z", "d1"}, {"Z", "d1"}, {"Z", "d1"}}},
		{"trimmed ids", [][2]string{{"A", "d1"}, {" A ", "d2"}}},
	}

	for _, v := range tests {
		res, err := reconcile.Deduplicate(occurrences(v.rows...))
		require.NoError(t, err, v.msg)
		var sum int
		for _, k := range res.DatasetKeys {
			total := res.DatasetTotals[k]
			dups := res.DatasetDuplicates[k]
			assert.GreaterOrEqual(t, dups, 0, v.msg)
			assert.LessOrEqual(t, dups, total, v.msg)
			sum += total
		}
		assert.Equal(t, res.Total, sum, v.msg)
		assert.Equal(t, len(v.rows), res.Total, v.msg)
	}
}

// TestDeduplicate_DuplicateDataset verifies that duplicates are counted in
// the dataset of the extra copy.
func TestDeduplicate_DuplicateDataset(t *testing.T) {
	tbl := occurrences(
		[2]string{"A", "d1"},
		[2]string{"A", "d2"},
	)
	res, err := reconcile.Deduplicate(tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"d1", "d2"}, res.DatasetKeys)
	assert.Equal(t, 0, res.DatasetDuplicates["d1"])
	assert.Equal(t, 1, res.DatasetDuplicates["d2"])
}

// TestDeduplicate_MissingColumn verifies that absent required columns are
// reported by name.
func TestDeduplicate_MissingColumn(t *testing.T) {
	tests := []struct {
		msg  string
		cols []string
		miss string
	}{
		{"no catalog number", []string{"gbifID", "datasetKey"}, reconcile.CatalogNumber},
		{"no dataset key", []string{"catalogNumber"}, reconcile.DatasetKey},
	}

	for _, v := range tests {
		_, err := reconcile.Deduplicate(reconcile.NewTable(v.cols...))
		var colErr *reconcile.ColumnError
		require.ErrorAs(t, err, &colErr, v.msg)
		assert.Equal(t, v.miss, colErr.Column, v.msg)
		assert.Contains(t, err.Error(), v.miss, v.msg)
	}
}

// TestTableConcat verifies that concatenation unions columns and
// preserves row order.
func TestTableConcat(t *testing.T) {
	t1 := reconcile.NewTable("a", "b")
	t1.Append([]string{"1", "2"})
	t2 := reconcile.NewTable("b", "c")
	t2.Append([]string{"3", "4"})
	t2.Append([]string{"5"})

	t1.Concat(t2)
	assert.Equal(t, []string{"a", "b", "c"}, t1.Columns)
	assert.Equal(t, [][]string{
		{"1", "2", ""},
		{"", "3", "4"},
		{"", "5", ""},
	}, t1.Rows)
	assert.Equal(t, 3, t1.Len())

	t1.Concat(nil)
	assert.Equal(t, 3, t1.Len())

	var empty *reconcile.Table
	assert.Equal(t, 0, empty.Len())
}
