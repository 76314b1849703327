package literature

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxSheetName is the longest sheet name allowed by spreadsheet
// applications, in characters.
const MaxSheetName = 31

// Names of the summary sheets of the workbook.
const (
	AllResultsSheet      = "All Results"
	PublisherCountsSheet = "Publisher Counts"
)

// fallbackSheetName replaces names that are empty after sanitizing.
const fallbackSheetName = "Sheet"

var sheetReplacer = strings.NewReplacer(
	"/", "_", "\\", "_", "*", "_", "?", "_", ":", "_", "[", "_", "]", "_",
)

// Sheet is the content of one workbook sheet.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

// SheetName converts a name to a valid sheet name. Forbidden characters
// become underscores, leading and trailing apostrophes and spaces are
// removed and the result is truncated to MaxSheetName characters.
func SheetName(name string) string {
	res := trimSheetName(sheetReplacer.Replace(name))
	if res == "" {
		return fallbackSheetName
	}
	return truncate(res, MaxSheetName)
}

// SheetNames converts names to valid sheet names that differ from each
// other and from reserved names ignoring case. Collisions get a numeric
// suffix " (2)", " (3)" and so on, the base is shortened to keep the name
// within MaxSheetName characters.
func SheetNames(names []string, reserved ...string) []string {
	used := make(map[string]struct{}, len(names)+len(reserved))
	for _, r := range reserved {
		used[strings.ToLower(r)] = struct{}{}
	}

	res := make([]string, len(names))
	for i, n := range names {
		base := SheetName(n)
		name := base
		for j := 2; ; j++ {
			if _, ok := used[strings.ToLower(name)]; !ok {
				break
			}
			suffix := " (" + strconv.Itoa(j) + ")"
			name = truncate(base, MaxSheetName-utf8.RuneCountInString(suffix)) + suffix
		}
		used[strings.ToLower(name)] = struct{}{}
		res[i] = name
	}
	return res
}

func trimSheetName(s string) string {
	return strings.Trim(strings.TrimSpace(s), "' ")
}

// truncate cuts s to at most n characters, the cut must not leave an
// apostrophe or space at the end.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	rs := []rune(s)
	res := trimSheetName(string(rs[:n]))
	if res == "" {
		return fallbackSheetName
	}
	return res
}

// Sheets lays out the workbook: all joined rows, distinct title counts per
// publisher with a total, and distinct titles of every publisher.
func (r *Report) Sheets() []Sheet {
	all := Sheet{Name: AllResultsSheet, Header: Columns}
	all.Rows = make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		all.Rows = append(all.Rows, row.Values())
	}

	counts := Sheet{
		Name:   PublisherCountsSheet,
		Header: []string{"publisher", "uniqueTitles"},
	}
	pubs := make([]string, 0, len(r.Publishers))
	for _, p := range r.Publishers {
		pubs = append(pubs, p.Publisher)
		counts.Rows = append(counts.Rows,
			[]string{p.Publisher, strconv.Itoa(len(p.Titles))})
	}
	counts.Rows = append(counts.Rows, []string{"Total", strconv.Itoa(r.Total)})

	res := []Sheet{all, counts}
	names := SheetNames(pubs, AllResultsSheet, PublisherCountsSheet)
	for i, p := range r.Publishers {
		s := Sheet{Name: names[i], Header: []string{"title"}}
		for _, t := range p.Titles {
			s.Rows = append(s.Rows, []string{t})
		}
		res = append(res, s)
	}
	return res
}
