// Package literature normalizes GBIF literature search results, joins them
// with dataset metadata and lays out the annual literature workbook.
//
// The package is pure, searching and file writing are done by
// internal/ioliterature.
package literature

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/gnames/gbifreport/pkg/config"
)

// Fields of a normalized literature record in output order. Names follow
// GBIF literature API.
var Fields = []string{
	"title",
	"authors",
	"source",
	"year",
	"published",
	"doi",
	"websites",
	"abstract",
	"publisher",
	"publishingCountry",
	"openAccess",
	"peerReview",
	"citationType",
	"countriesOfCoverage",
	"countriesOfResearcher",
	"keywords",
	"literatureType",
	"identifiers",
	"id",
	"topics",
	"gbifDownloadKey",
}

// Columns of joined literature rows.
var Columns = slices.Concat(
	[]string{"datasetKey", "datasetPublisher", "datasetName"},
	Fields,
)

// Dataset is metadata of a reconciled dataset.
type Dataset struct {
	Key       string
	Publisher string
	Name      string
}

// Record is a literature search result reduced to Fields. Every field has
// a value, missing ones are config.NotAvailable.
type Record map[string]string

// Normalize converts a decoded search result to a Record. Scalars are
// rendered as text, lists and objects as compact JSON.
func Normalize(res map[string]any) Record {
	rec := make(Record, len(Fields))
	for _, f := range Fields {
		rec[f] = formatValue(res[f])
	}
	return rec
}

// Title returns the title of a record.
func (r Record) Title() string {
	if t, ok := r["title"]; ok {
		return t
	}
	return config.NotAvailable
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return config.NotAvailable
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1e15 {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case []any, map[string]any:
		bs, err := json.Marshal(val)
		if err != nil {
			return config.NotAvailable
		}
		return string(bs)
	default:
		return fmt.Sprint(val)
	}
}

// Result contains literature records found for one dataset key.
type Result struct {
	DatasetKey string
	Records    []Record
}

// Row is a literature record joined with metadata of its dataset.
type Row struct {
	Dataset Dataset
	Record  Record
}

// Values returns the row in the order of Columns.
func (r Row) Values() []string {
	res := make([]string, 0, len(Columns))
	res = append(res, r.Dataset.Key, r.Dataset.Publisher, r.Dataset.Name)
	for _, f := range Fields {
		v, ok := r.Record[f]
		if !ok {
			v = config.NotAvailable
		}
		res = append(res, v)
	}
	return res
}

// TitleCount lists distinct titles citing datasets of one publisher.
type TitleCount struct {
	Publisher string
	Titles    []string
}

// Report is the result of a literature run.
type Report struct {
	// Year of publication of the collected literature.
	Year int

	// Rows are all found records joined with dataset metadata.
	Rows []Row

	// Publishers contains distinct titles per dataset publisher, sorted
	// by publisher.
	Publishers []TitleCount

	// Total is the number of distinct titles of the whole report.
	Total int
}

// NewReport joins search results with dataset metadata and counts
// distinct titles. Records of keys absent from metadata get
// config.NotAvailable publisher and dataset name. Records without a
// title are kept in Rows but not counted.
func NewReport(year int, meta []Dataset, results []Result) *Report {
	idx := make(map[string]Dataset, len(meta))
	for _, d := range meta {
		if _, ok := idx[d.Key]; !ok {
			idx[d.Key] = d
		}
	}

	res := Report{Year: year}
	all := make(map[string]struct{})
	titles := make(map[string][]string)
	seen := make(map[string]map[string]struct{})
	for _, r := range results {
		ds, ok := idx[r.DatasetKey]
		if !ok {
			ds = Dataset{
				Key:       r.DatasetKey,
				Publisher: config.NotAvailable,
				Name:      config.NotAvailable,
			}
		}

		for _, rec := range r.Records {
			res.Rows = append(res.Rows, Row{Dataset: ds, Record: rec})

			title := rec.Title()
			if title == "" || title == config.NotAvailable {
				continue
			}
			all[title] = struct{}{}
			if _, ok := seen[ds.Publisher]; !ok {
				seen[ds.Publisher] = make(map[string]struct{})
			}
			if _, ok := seen[ds.Publisher][title]; ok {
				continue
			}
			seen[ds.Publisher][title] = struct{}{}
			titles[ds.Publisher] = append(titles[ds.Publisher], title)
		}
	}

	res.Total = len(all)
	for pub, ts := range titles {
		res.Publishers = append(res.Publishers, TitleCount{
			Publisher: pub,
			Titles:    ts,
		})
	}
	slices.SortFunc(res.Publishers, func(a, b TitleCount) int {
		return strings.Compare(a.Publisher, b.Publisher)
	})
	return &res
}
