package reconcile

import (
	"slices"
	"strings"

	"github.com/gnames/gnuuid"
)

// Columns appended to duplicate records in the combined duplicates table.
const (
	PublisherColumn      = "publisher"
	DuplicateGroupColumn = "duplicateGroup"
)

// DatasetCount contains occurrence counts of one dataset.
type DatasetCount struct {
	Publisher   string
	DatasetName string
	DatasetKey  string
	Total       int
	Unique      int
	Duplicates  int
}

// Summary contains occurrence counts of one publisher.
type Summary struct {
	Publisher  string
	Total      int
	Duplicates int
	Unique     int
}

// DatasetNamer resolves a dataset key to a human-readable title.
type DatasetNamer func(datasetKey string) string

// Accumulator collects per-dataset counts, publisher summaries and
// duplicate records across publishers.
//
// Dataset counts are keyed by dataset key. If a dataset appears again
// (for example under another publisher) its total and duplicate counts
// are added to the existing entry, which keeps its first publisher and
// title.
type Accumulator struct {
	namer     DatasetNamer
	keys      []string
	counts    map[string]*DatasetCount
	summaries []Summary

	duplicates *Table
	dupMeta    [][2]string
}

// NewAccumulator creates an Accumulator. The namer is called once for
// every new dataset key, including the empty one. If namer is nil,
// dataset keys are used as titles.
func NewAccumulator(namer DatasetNamer) *Accumulator {
	return &Accumulator{
		namer:      namer,
		counts:     make(map[string]*DatasetCount),
		duplicates: NewTable(),
	}
}

// Add records deduplication results of one publisher. The table must be
// the one the result was computed from.
func (a *Accumulator) Add(publisher string, t *Table, res *Result) {
	for _, key := range res.DatasetKeys {
		total := res.DatasetTotals[key]
		dups := res.DatasetDuplicates[key]
		if dc, ok := a.counts[key]; ok {
			dc.Total += total
			dc.Duplicates += dups
			dc.Unique = dc.Total - dc.Duplicates
			continue
		}

		a.keys = append(a.keys, key)
		a.counts[key] = &DatasetCount{
			Publisher:   publisher,
			DatasetName: a.datasetName(key),
			DatasetKey:  key,
			Total:       total,
			Duplicates:  dups,
			Unique:      total - dups,
		}
	}

	a.summaries = append(a.summaries, Summary{
		Publisher:  publisher,
		Total:      res.Total,
		Duplicates: len(res.Duplicates),
		Unique:     res.Unique(),
	})

	if len(res.Duplicates) == 0 {
		return
	}
	idIdx := t.Index(CatalogNumber)
	a.duplicates.Concat(t.Select(res.Duplicates))
	for _, i := range res.Duplicates {
		id := strings.TrimSpace(t.Rows[i][idIdx])
		group := gnuuid.New(publisher + "|" + id).String()
		a.dupMeta = append(a.dupMeta, [2]string{publisher, group})
	}
}

// DatasetCounts returns per-dataset counts in order of first appearance.
func (a *Accumulator) DatasetCounts() []DatasetCount {
	res := make([]DatasetCount, 0, len(a.keys))
	for _, k := range a.keys {
		res = append(res, *a.counts[k])
	}
	return res
}

// Summaries returns one summary per added publisher in order of addition.
func (a *Accumulator) Summaries() []Summary {
	res := make([]Summary, len(a.summaries))
	copy(res, a.summaries)
	return res
}

// Total returns the sum of all publisher summaries.
func (a *Accumulator) Total() Summary {
	res := Summary{Publisher: "Total"}
	for _, s := range a.summaries {
		res.Total += s.Total
		res.Duplicates += s.Duplicates
		res.Unique += s.Unique
	}
	return res
}

// Duplicates returns all duplicate records with publisher and
// duplicateGroup columns appended. Records that share a catalog number
// within a publisher share the duplicateGroup value.
func (a *Accumulator) Duplicates() *Table {
	cols := slices.Concat(
		a.duplicates.Columns,
		[]string{PublisherColumn, DuplicateGroupColumn},
	)
	res := NewTable(cols...)
	res.Rows = make([][]string, 0, a.duplicates.Len())
	for i, row := range a.duplicates.Rows {
		r := make([]string, 0, len(cols))
		r = append(r, row...)
		r = append(r, a.dupMeta[i][0], a.dupMeta[i][1])
		res.Rows = append(res.Rows, r)
	}
	return res
}

// DuplicatesNum returns the number of collected duplicate records.
func (a *Accumulator) DuplicatesNum() int {
	return a.duplicates.Len()
}

func (a *Accumulator) datasetName(key string) string {
	if a.namer == nil {
		return key
	}
	return a.namer(key)
}
