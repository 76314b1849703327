package gbif

import "slices"

// FormatSimpleCSV is the tab-delimited download format with one row
// per occurrence.
const FormatSimpleCSV = "SIMPLE_CSV"

// Status of a download job.
type Status string

// Download job states reported by GBIF.
const (
	StatusPreparing  Status = "PREPARING"
	StatusRunning    Status = "RUNNING"
	StatusSucceeded  Status = "SUCCEEDED"
	StatusCancelled  Status = "CANCELLED"
	StatusKilled     Status = "KILLED"
	StatusFailed     Status = "FAILED"
	StatusSuspended  Status = "SUSPENDED"
	StatusFileErased Status = "FILE_ERASED"
)

// IsTerminal returns true if a job in this state will never succeed.
func (s Status) IsTerminal() bool {
	return slices.Contains([]Status{
		StatusCancelled, StatusKilled, StatusFailed, StatusFileErased,
	}, s)
}

// Predicate is a node of the occurrence search predicate tree.
// Leaf predicates use Key and Value, logical predicates use Predicates.
type Predicate struct {
	Type       string      `json:"type"`
	Key        string      `json:"key,omitempty"`
	Value      string      `json:"value,omitempty"`
	Predicates []Predicate `json:"predicates,omitempty"`
}

// Equals creates an 'equals' predicate.
func Equals(key, value string) Predicate {
	return Predicate{Type: "equals", Key: key, Value: value}
}

// LessThanOrEquals creates a 'lessThanOrEquals' predicate.
func LessThanOrEquals(key, value string) Predicate {
	return Predicate{Type: "lessThanOrEquals", Key: key, Value: value}
}

// And combines predicates with logical AND.
func And(ps ...Predicate) Predicate {
	return Predicate{Type: "and", Predicates: ps}
}

// DownloadRequest is the body of an occurrence download request.
type DownloadRequest struct {
	Creator               string    `json:"creator"`
	NotificationAddresses []string  `json:"notificationAddresses,omitempty"`
	SendNotification      bool      `json:"sendNotification"`
	Format                string    `json:"format"`
	Predicate             Predicate `json:"predicate"`
}

// PreservedSpecimens creates a download request for present preserved
// specimens of a publishing organization with event date not later than
// cutoff.
func PreservedSpecimens(orgKey, cutoff, creator, email string) DownloadRequest {
	res := DownloadRequest{
		Creator: creator,
		Format:  FormatSimpleCSV,
		Predicate: And(
			Equals("PUBLISHING_ORG", orgKey),
			Equals("BASIS_OF_RECORD", "PRESERVED_SPECIMEN"),
			Equals("OCCURRENCE_STATUS", "PRESENT"),
			LessThanOrEquals("EVENT_DATE", cutoff),
		),
	}
	if email != "" {
		res.NotificationAddresses = []string{email}
		res.SendNotification = true
	}
	return res
}

// DownloadMeta describes the state of a download job. DownloadURL and
// Size are known when the job succeeded.
type DownloadMeta struct {
	Key          string `json:"key"`
	Status       Status `json:"status"`
	DownloadURL  string `json:"downloadLink"`
	Size         int64  `json:"size"`
	TotalRecords int64  `json:"totalRecords"`
}
