package gbif

// LiteratureQuery selects one page of literature search results.
type LiteratureQuery struct {
	DatasetKey string
	Year       int
	Limit      int
	Offset     int
}

// LiteraturePage is one page of literature search results. Records are
// kept as decoded JSON objects, their shape varies between records.
type LiteraturePage struct {
	Offset       int              `json:"offset"`
	Limit        int              `json:"limit"`
	EndOfRecords bool             `json:"endOfRecords"`
	Count        int              `json:"count"`
	Results      []map[string]any `json:"results"`
}
