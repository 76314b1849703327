// Package lifecycle defines the pipelines of an annual report run:
// downloading occurrence archives, reconciling their record counts and
// collecting literature that cites the reconciled datasets.
//
// Pipelines are executed in that order, each one consumes files produced
// by the previous one. Implementations live in internal/io* packages.
package lifecycle

import (
	"context"

	"github.com/gnames/gbifreport/pkg/literature"
	"github.com/gnames/gbifreport/pkg/publisher"
	"github.com/gnames/gbifreport/pkg/reconcile"
)

// Downloader requests occurrence downloads from GBIF and saves their
// archives.
type Downloader interface {
	// Download submits a download job for every publisher, waits until the
	// job is ready and saves the archive to the archive directory.
	// A failed publisher does not stop the others, an error is returned
	// only if all publishers failed.
	Download(ctx context.Context, pubs []publisher.Publisher) error
}

// Reconciler deduplicates records of downloaded archives and writes
// dataset counts, publisher summaries and duplicates.
type Reconciler interface {
	// Reconcile processes archives of publishers and writes report files
	// to the output directory. Returns the accumulated counts.
	Reconcile(
		ctx context.Context,
		pubs []publisher.Publisher,
	) (*reconcile.Accumulator, error)
}

// LiteratureFetcher collects literature citing datasets from a dataset
// counts file and writes a workbook with the results.
type LiteratureFetcher interface {
	// Fetch searches literature for every dataset key of the counts file
	// and writes the workbook.
	Fetch(ctx context.Context, countsFile string) (*literature.Report, error)
}
