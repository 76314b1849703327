// Package ioreconcile implements lifecycle.Reconciler. It extracts
// downloaded archives, deduplicates occurrence records of every publisher
// and writes dataset counts, publisher summaries and duplicate records.
package ioreconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gbifreport/internal/iofs"
	"github.com/gnames/gbifreport/pkg/config"
	"github.com/gnames/gbifreport/pkg/errcode"
	"github.com/gnames/gbifreport/pkg/gbif"
	"github.com/gnames/gbifreport/pkg/lifecycle"
	"github.com/gnames/gbifreport/pkg/publisher"
	"github.com/gnames/gbifreport/pkg/reconcile"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/patrickmn/go-cache"
)

type reconciler struct {
	cfg    *config.Config
	client gbif.Client

	// titles keeps dataset titles resolved during a run.
	titles *cache.Cache
}

// New creates a Reconciler. The client is used to resolve dataset titles.
func New(cfg *config.Config, client gbif.Client) lifecycle.Reconciler {
	return &reconciler{
		cfg:    cfg,
		client: client,
		titles: cache.New(time.Hour, 10*time.Minute),
	}
}

// Reconcile implements lifecycle.Reconciler.
func (r *reconciler) Reconcile(
	ctx context.Context,
	pubs []publisher.Publisher,
) (*reconcile.Accumulator, error) {
	if err := iofs.EnsureDir(r.cfg.Paths.OutputDir); err != nil {
		return nil, err
	}

	startTime := time.Now()
	slog.Info("Starting reconciliation",
		"publishers", len(pubs),
		"archive_dir", r.cfg.Paths.ArchiveDir,
	)

	acc := reconcile.NewAccumulator(r.namer(ctx))
	var successCount, errorCount, skipCount int
	for i, p := range pubs {
		fmt.Println()
		fmt.Println(strings.Repeat("─", 60))
		gn.Info("Publisher [%d/%d]: %s", i+1, len(pubs), p.Name)
		fmt.Println(strings.Repeat("─", 60))

		select {
		case <-ctx.Done():
			return nil, CancelledError(ctx.Err())
		default:
		}

		t, err := r.loadPublisher(ctx, p)
		if err != nil {
			if ctx.Err() != nil {
				return nil, CancelledError(ctx.Err())
			}
			var gnErr *gn.Error
			if errors.As(err, &gnErr) &&
				gnErr.Code == errcode.ReconcileNoArchivesError {
				skipCount++
				slog.Warn("Publisher skipped", "publisher", p.Name, "error", err)
				gn.PrintErrorMessage(err)
				continue
			}
			errorCount++
			slog.Error("Failed to reconcile publisher",
				"publisher", p.Name,
				"uuid", p.UUID,
				"error", err,
			)
			gn.PrintErrorMessage(err)
			continue
		}

		res, err := reconcile.Deduplicate(t)
		if err != nil {
			errorCount++
			slog.Error("Failed to reconcile publisher",
				"publisher", p.Name,
				"error", err,
			)
			gn.PrintErrorMessage(err)
			continue
		}

		acc.Add(p.Name, t, res)
		successCount++
		slog.Info("Publisher reconciled",
			"publisher", p.Name,
			"total", res.Total,
			"duplicates", len(res.Duplicates),
			"unique", res.Unique(),
		)
		gn.Info("Records: <em>%s</em>, duplicates: <em>%s</em>, unique: <em>%s</em>",
			humanize.Comma(int64(res.Total)),
			humanize.Comma(int64(len(res.Duplicates))),
			humanize.Comma(int64(res.Unique())),
		)
	}

	if errorCount > 0 && successCount == 0 {
		return nil, AllPublishersFailedError(errorCount)
	}

	if err := r.writeReports(acc); err != nil {
		return nil, err
	}

	totalDuration := gnfmt.TimeString(time.Since(startTime).Seconds())
	slog.Info("Reconciliation complete",
		"success", successCount,
		"errors", errorCount,
		"skipped", skipCount,
		"total", len(pubs),
		"duration", totalDuration,
	)
	gn.Info(`Reconciliation complete
Publishers succeeded: %d, failed %d, skipped %d, total %d.
Reports are saved to <em>%s</em>
Elapsed time: <em>%s</em>
`,
		successCount, errorCount, skipCount, len(pubs),
		r.cfg.Paths.OutputDir, totalDuration,
	)
	return acc, nil
}

// loadPublisher reads occurrences of all archives of a publisher into
// one table.
func (r *reconciler) loadPublisher(
	ctx context.Context,
	p publisher.Publisher,
) (*reconcile.Table, error) {
	dir := r.cfg.Paths.ArchiveDir
	archives, err := findArchives(dir, p)
	if err != nil {
		return nil, ArchiveError(dir, err)
	}
	if len(archives) == 0 {
		return nil, NoArchivesError(p.Name, dir)
	}

	res := reconcile.NewTable()
	for _, a := range archives {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		t, err := r.readArchive(a)
		if err != nil {
			return nil, err
		}
		res.Concat(t)
	}
	return res, nil
}

// readArchive extracts an archive and reads its data files. Every file
// must contain columns required for reconciliation.
func (r *reconciler) readArchive(archive string) (*reconcile.Table, error) {
	name := filepath.Base(archive)
	gn.Info("Extracting <em>%s</em>", name)
	dir, err := extract(archive)
	if err != nil {
		return nil, ExtractError(archive, err)
	}

	files, err := dataFiles(dir, r.cfg.Reconcile.FilePattern)
	if err != nil {
		return nil, ExtractError(archive, err)
	}

	res := reconcile.NewTable()
	for _, f := range files {
		t, err := readTable(f)
		if err != nil {
			return nil, ReadTableError(f, err)
		}
		if col := missingColumn(t); col != "" {
			return nil, MissingColumnError(col, name)
		}
		slog.Info("Data file read", "file", f, "records", t.Len())
		res.Concat(t)
	}

	if col := missingColumn(res); col != "" {
		return nil, MissingColumnError(col, name)
	}
	return res, nil
}

// namer resolves dataset titles through GBIF registry. Titles are cached,
// failed lookups give UnknownDataset.
func (r *reconciler) namer(ctx context.Context) reconcile.DatasetNamer {
	return func(key string) string {
		if key == "" {
			return config.UnknownDataset
		}
		if v, ok := r.titles.Get(key); ok {
			return v.(string)
		}

		title := config.UnknownDataset
		ds, err := r.client.Dataset(ctx, key)
		switch {
		case err != nil:
			slog.Warn("Cannot get dataset title", "dataset_key", key, "error", err)
		case ds.Title == "":
			slog.Warn("Dataset has no title", "dataset_key", key)
		default:
			title = ds.Title
		}

		r.titles.Set(key, title, cache.DefaultExpiration)
		return title
	}
}
