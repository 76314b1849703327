package ioliterature

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gnames/gbifreport/internal/iotesting"
	"github.com/gnames/gbifreport/pkg/config"
	"github.com/gnames/gbifreport/pkg/errcode"
	"github.com/gnames/gbifreport/pkg/gbif"
	"github.com/gnames/gbifreport/pkg/literature"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// fakeClient serves literature pages of scripted sizes per dataset key.
type fakeClient struct {
	gbif.Client

	mu      sync.Mutex
	pages   map[string][]int
	fail    map[string]int
	queries []gbif.LiteratureQuery
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		pages: make(map[string][]int),
		fail:  make(map[string]int),
	}
}

func (f *fakeClient) SearchLiterature(
	_ context.Context,
	q gbif.LiteratureQuery,
) (gbif.LiteraturePage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var call int
	for _, v := range f.queries {
		if v.DatasetKey == q.DatasetKey {
			call++
		}
	}
	f.queries = append(f.queries, q)

	if n, ok := f.fail[q.DatasetKey]; ok && call >= n {
		return gbif.LiteraturePage{}, errors.New("service unavailable")
	}

	res := gbif.LiteraturePage{Offset: q.Offset, Limit: q.Limit}
	sizes := f.pages[q.DatasetKey]
	if call >= len(sizes) {
		return res, nil
	}
	for i := range sizes[call] {
		res.Results = append(res.Results, map[string]any{
			"title": fmt.Sprintf("%s title %d", q.DatasetKey, q.Offset+i),
			"year":  float64(2024),
		})
	}
	return res, nil
}

func (f *fakeClient) calls(key string) []gbif.LiteratureQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []gbif.LiteratureQuery
	for _, q := range f.queries {
		if q.DatasetKey == key {
			res = append(res, q)
		}
	}
	return res
}

const countsCSV = `publisher,datasetName,datasetKey,preservedSpecimenCountTotal,preservedSpecimenCountUnique,duplicatesCountedInOtherDatasets
NHMD,Birds,ds1,10,9,1
NHMD,Fishes,ds2,5,5,0
Aarhus,Plants,ds3,7,7,0
Aarhus,Plants,ds3,7,7,0
Aarhus,Empty,,1,1,0
`

func newTestFetcher(t *testing.T, cl gbif.Client) (*fetcher, string) {
	t.Helper()
	cfg := iotesting.Config(t,
		config.OptLiteratureYear(2024),
		config.OptLiteraturePageSize(300),
		config.OptLiteratureRequestDelay(time.Millisecond),
	)
	input := iotesting.WriteFile(t, cfg.HomeDir, config.DatasetCountsFile, countsCSV)
	return New(cfg, cl).(*fetcher), input
}

// TestSearchDataset verifies pagination until an empty page.
func TestSearchDataset(t *testing.T) {
	cl := newFakeClient()
	cl.pages["ds1"] = []int{300, 300, 150}
	f, _ := newTestFetcher(t, cl)

	recs, err := f.searchDataset(context.Background(), "ds1")
	require.NoError(t, err)
	assert.Len(t, recs, 750)

	calls := cl.calls("ds1")
	require.Len(t, calls, 4)
	offsets := make([]int, len(calls))
	for i, q := range calls {
		offsets[i] = q.Offset
		assert.Equal(t, 300, q.Limit)
		assert.Equal(t, 2024, q.Year)
	}
	assert.Equal(t, []int{0, 300, 600, 750}, offsets)
	assert.Equal(t, "ds1 title 749", recs[749]["title"])
}

// TestFetch verifies the workbook and CSV produced from search results.
func TestFetch(t *testing.T) {
	cl := newFakeClient()
	cl.pages["ds1"] = []int{2}
	cl.pages["ds3"] = []int{1}
	// ds2 fails after the first page, its partial results are dropped
	cl.pages["ds2"] = []int{3, 3}
	cl.fail["ds2"] = 1
	f, input := newTestFetcher(t, cl)

	rep, err := f.Fetch(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, rep.Rows, 3)
	assert.Equal(t, 3, rep.Total)
	assert.Len(t, cl.calls("ds3"), 2)

	out := f.cfg.Paths.OutputDir
	wb, err := excelize.OpenFile(filepath.Join(out, "gbif_publications_2024.xlsx"))
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{
		literature.AllResultsSheet,
		literature.PublisherCountsSheet,
		"Aarhus",
		"NHMD",
	}, wb.GetSheetList())

	rows, err := wb.GetRows(literature.AllResultsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, literature.Columns, rows[0])
	assert.Equal(t, []string{"ds1", "NHMD", "Birds", "ds1 title 0"}, rows[1][:4])

	rows, err = wb.GetRows(literature.PublisherCountsSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"publisher", "uniqueTitles"},
		{"Aarhus", "1"},
		{"NHMD", "2"},
		{"Total", "3"},
	}, rows)

	rows, err = wb.GetRows("NHMD")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"title"}, {"ds1 title 0"}, {"ds1 title 1"}}, rows)

	fh, err := os.Open(filepath.Join(out, config.LiteratureCSVFile))
	require.NoError(t, err)
	defer fh.Close()
	recs, err := csv.NewReader(fh).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 4)
	assert.Equal(t, literature.Columns, recs[0])
}

// TestFetch_AllFailed verifies the error when every dataset search fails.
func TestFetch_AllFailed(t *testing.T) {
	cl := newFakeClient()
	for _, k := range []string{"ds1", "ds2", "ds3"} {
		cl.fail[k] = 0
	}
	f, input := newTestFetcher(t, cl)

	_, err := f.Fetch(context.Background(), input)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.LiteratureAllFailedError, gnErr.Code)
}

// TestFetch_Cancelled verifies that a cancelled context stops the search.
func TestFetch_Cancelled(t *testing.T) {
	f, input := newTestFetcher(t, newFakeClient())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Fetch(ctx, input)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.LiteratureCancelledError, gnErr.Code)
}

// TestFetch_BadInput verifies errors of unusable counts files.
func TestFetch_BadInput(t *testing.T) {
	f, _ := newTestFetcher(t, newFakeClient())
	dir := t.TempDir()

	noKey := iotesting.WriteFile(t, dir, "no_key.csv", "publisher,datasetName\nA,B\n")

	tests := []struct {
		msg, path string
	}{
		{"missing file", filepath.Join(dir, "absent.csv")},
		{"missing column", noKey},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			_, err := f.Fetch(context.Background(), tt.path)
			var gnErr *gn.Error
			require.ErrorAs(t, err, &gnErr)
			assert.Equal(t, errcode.LiteratureInputError, gnErr.Code)
		})
	}
}

// TestReadDatasets verifies distinct dataset keys and metadata defaults.
func TestReadDatasets(t *testing.T) {
	content := "\ufeffdatasetKey,publisher\nds1,NHMD\nds2,\nds1,NHMD\n"
	path := iotesting.WriteFile(t, t.TempDir(), "counts.csv", content)

	meta, keys, err := readDatasets(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"ds1", "ds2"}, keys)
	require.Len(t, meta, 3)
	assert.Equal(t, config.NotAvailable, meta[0].Name)
	assert.Equal(t, config.NotAvailable, meta[1].Publisher)
}
