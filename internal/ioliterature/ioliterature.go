// Package ioliterature implements lifecycle.LiteratureFetcher. It
// searches GBIF literature citing reconciled datasets and saves the
// results as a workbook and a CSV file.
package ioliterature

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gbifreport/internal/iofs"
	"github.com/gnames/gbifreport/pkg/config"
	"github.com/gnames/gbifreport/pkg/gbif"
	"github.com/gnames/gbifreport/pkg/lifecycle"
	"github.com/gnames/gbifreport/pkg/literature"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"golang.org/x/time/rate"
)

type fetcher struct {
	cfg    *config.Config
	client gbif.Client

	// limiter spaces search requests by the configured delay.
	limiter *rate.Limiter
}

// New creates a LiteratureFetcher.
func New(cfg *config.Config, client gbif.Client) lifecycle.LiteratureFetcher {
	return &fetcher{
		cfg:     cfg,
		client:  client,
		limiter: rate.NewLimiter(rate.Every(cfg.Literature.RequestDelay), 1),
	}
}

// Fetch implements lifecycle.LiteratureFetcher.
func (f *fetcher) Fetch(
	ctx context.Context,
	countsFile string,
) (*literature.Report, error) {
	meta, keys, err := readDatasets(countsFile)
	if err != nil {
		return nil, InputError(countsFile, err)
	}

	if err = iofs.EnsureDir(f.cfg.Paths.OutputDir); err != nil {
		return nil, err
	}

	startTime := time.Now()
	slog.Info("Starting literature search",
		"datasets", len(keys),
		"year", f.cfg.Literature.Year,
	)
	fmt.Println(strings.Repeat("─", 60))
	gn.Info("Literature of <em>%d</em> for %d datasets",
		f.cfg.Literature.Year, len(keys))
	fmt.Println(strings.Repeat("─", 60))

	var results []literature.Result
	var successCount, errorCount, recordsNum int
	for i, key := range keys {
		select {
		case <-ctx.Done():
			return nil, CancelledError(ctx.Err())
		default:
		}

		recs, err := f.searchDataset(ctx, key)
		if err != nil {
			if ctx.Err() != nil {
				return nil, CancelledError(ctx.Err())
			}
			errorCount++
			slog.Error("Failed to search literature",
				"dataset_key", key,
				"error", err,
			)
			gn.PrintErrorMessage(err)
			continue
		}

		successCount++
		recordsNum += len(recs)
		results = append(results, literature.Result{DatasetKey: key, Records: recs})
		slog.Info("Dataset literature collected",
			"dataset_key", key,
			"records", len(recs),
		)
		gn.Info("Dataset [%d/%d]: %s, records: <em>%s</em>",
			i+1, len(keys), key, humanize.Comma(int64(len(recs))))
	}

	if errorCount > 0 && successCount == 0 {
		return nil, AllDatasetsFailedError(errorCount)
	}

	res := literature.NewReport(f.cfg.Literature.Year, meta, results)

	wbPath := filepath.Join(f.cfg.Paths.OutputDir, f.cfg.LiteratureWorkbookFile())
	if err = writeWorkbook(wbPath, res.Sheets()); err != nil {
		return nil, err
	}

	csvPath := filepath.Join(f.cfg.Paths.OutputDir, config.LiteratureCSVFile)
	if err = writeCSV(csvPath, res); err != nil {
		return nil, err
	}

	totalDuration := gnfmt.TimeString(time.Since(startTime).Seconds())
	slog.Info("Literature search complete",
		"success", successCount,
		"errors", errorCount,
		"records", recordsNum,
		"titles", res.Total,
		"duration", totalDuration,
	)
	gn.Info(`Literature search complete
Datasets succeeded: %d, failed %d, total %d.
Records: %s, distinct titles: %s.
Workbook: <em>%s</em>
Elapsed time: <em>%s</em>
`,
		successCount, errorCount, len(keys),
		humanize.Comma(int64(recordsNum)), humanize.Comma(int64(res.Total)),
		wbPath, totalDuration,
	)
	return res, nil
}

// searchDataset pages through literature citing a dataset until GBIF
// returns an empty page.
func (f *fetcher) searchDataset(
	ctx context.Context,
	key string,
) ([]literature.Record, error) {
	var res []literature.Record
	var offset int
	for {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, SearchError(key, offset, err)
		}

		page, err := f.client.SearchLiterature(ctx, gbif.LiteratureQuery{
			DatasetKey: key,
			Year:       f.cfg.Literature.Year,
			Limit:      f.cfg.Literature.PageSize,
			Offset:     offset,
		})
		if err != nil {
			return nil, SearchError(key, offset, err)
		}
		if len(page.Results) == 0 {
			break
		}

		for _, v := range page.Results {
			res = append(res, literature.Normalize(v))
		}
		offset += len(page.Results)
		slog.Debug("Literature page received",
			"dataset_key", key,
			"records", len(page.Results),
			"offset", offset,
		)
	}
	return res, nil
}
