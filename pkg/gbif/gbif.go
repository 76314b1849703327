// Package gbif describes the subset of the GBIF REST API used by gbifreport.
// The interface is implemented by internal/iogbif; pipelines depend only on
// this package so they can be tested with fakes.
package gbif

import (
	"context"
	"io"
)

// Client provides access to GBIF API endpoints.
type Client interface {
	// SubmitDownload requests an asynchronous occurrence download and
	// returns the download key. Requires credentials.
	SubmitDownload(ctx context.Context, req DownloadRequest) (string, error)

	// DownloadStatus returns metadata of a download job.
	DownloadStatus(ctx context.Context, key string) (DownloadMeta, error)

	// FetchDownload streams the archive of a finished download job to w
	// and returns the number of written bytes. The archive is taken from
	// the download link of the job. If total is not nil, it is called with
	// the archive size before streaming starts (-1 if unknown).
	FetchDownload(
		ctx context.Context,
		meta DownloadMeta,
		w io.Writer,
		total func(int64),
	) (int64, error)

	// SearchLiterature returns one page of literature search results.
	SearchLiterature(ctx context.Context, q LiteratureQuery) (LiteraturePage, error)

	// Dataset returns metadata of a dataset.
	Dataset(ctx context.Context, key string) (Dataset, error)

	// SuggestOrganizations finds publishing organizations by name.
	SuggestOrganizations(ctx context.Context, q string) ([]Organization, error)
}

// Dataset contains the fields of GBIF dataset metadata used in reports.
type Dataset struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// Organization is a result of organization suggest lookup.
type Organization struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}
