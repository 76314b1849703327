package reconcile

import (
	"slices"
)

// Table is a text-typed tabular data set. Every row has exactly as many
// cells as there are columns.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NewTable creates an empty table with given columns.
func NewTable(columns ...string) *Table {
	return &Table{Columns: slices.Clone(columns)}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Index returns the position of a column, or -1 if the column is absent.
func (t *Table) Index(column string) int {
	return slices.Index(t.Columns, column)
}

// Append adds a row. Short rows are padded with empty cells, long rows
// are truncated to the number of columns.
func (t *Table) Append(row []string) {
	t.Rows = append(t.Rows, fitRow(row, len(t.Columns)))
}

// Concat appends rows of another table. Columns unknown to t are added
// after existing ones, cells of missing columns stay empty. Order of rows
// is preserved.
func (t *Table) Concat(other *Table) {
	if other == nil {
		return
	}
	mapping := make([]int, len(other.Columns))
	for i, col := range other.Columns {
		idx := t.Index(col)
		if idx == -1 {
			t.addColumn(col)
			idx = len(t.Columns) - 1
		}
		mapping[i] = idx
	}

	for _, row := range other.Rows {
		res := make([]string, len(t.Columns))
		for i, v := range row {
			if i < len(mapping) {
				res[mapping[i]] = v
			}
		}
		t.Rows = append(t.Rows, res)
	}
}

// Select returns a new table that contains rows with given indices,
// in the given order.
func (t *Table) Select(rows []int) *Table {
	res := NewTable(t.Columns...)
	res.Rows = make([][]string, 0, len(rows))
	for _, i := range rows {
		res.Rows = append(res.Rows, slices.Clone(t.Rows[i]))
	}
	return res
}

func (t *Table) addColumn(col string) {
	t.Columns = append(t.Columns, col)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], "")
	}
}

func fitRow(row []string, size int) []string {
	res := make([]string, size)
	copy(res, row)
	return res
}
