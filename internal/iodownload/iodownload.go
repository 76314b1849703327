// Package iodownload implements lifecycle.Downloader. It requests GBIF
// occurrence downloads of preserved specimens, waits until GBIF prepares
// them and saves the archives.
package iodownload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gbifreport/internal/iofs"
	"github.com/gnames/gbifreport/pkg/config"
	"github.com/gnames/gbifreport/pkg/gbif"
	"github.com/gnames/gbifreport/pkg/lifecycle"
	"github.com/gnames/gbifreport/pkg/publisher"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
)

type downloader struct {
	cfg    *config.Config
	client gbif.Client
}

// New creates a Downloader.
func New(cfg *config.Config, client gbif.Client) lifecycle.Downloader {
	return &downloader{cfg: cfg, client: client}
}

// Download implements lifecycle.Downloader.
func (d *downloader) Download(
	ctx context.Context,
	pubs []publisher.Publisher,
) error {
	if d.cfg.GBIF.User == "" || d.cfg.GBIF.Password == "" {
		return CredentialsError()
	}

	dir := d.cfg.Paths.ArchiveDir
	if err := iofs.EnsureDir(dir); err != nil {
		return err
	}

	startTime := time.Now()
	slog.Info("Starting occurrence downloads",
		"publishers", len(pubs),
		"cutoff_date", d.cfg.Download.CutoffDate,
	)

	var successCount, errorCount int
	for i, p := range pubs {
		fmt.Println()
		fmt.Println(strings.Repeat("─", 60))
		gn.Info("Publisher [%d/%d]: %s", i+1, len(pubs), p.Name)
		fmt.Println(strings.Repeat("─", 60))

		select {
		case <-ctx.Done():
			return CancelledError(ctx.Err())
		default:
		}

		pubStart := time.Now()
		path, err := d.downloadPublisher(ctx, p)
		if err != nil {
			if ctx.Err() != nil {
				return CancelledError(ctx.Err())
			}
			errorCount++
			slog.Error("Failed to download publisher archive",
				"publisher", p.Name,
				"uuid", p.UUID,
				"error", err,
			)
			gn.PrintErrorMessage(err)
			continue
		}

		successCount++
		dur := gnfmt.TimeString(time.Since(pubStart).Seconds())
		slog.Info("Archive saved",
			"publisher", p.Name,
			"path", path,
			"duration", dur,
		)
		gn.Info("Saved <em>%s</em> in %s", path, dur)
	}

	totalDuration := gnfmt.TimeString(time.Since(startTime).Seconds())
	slog.Info("Downloads complete",
		"success", successCount,
		"errors", errorCount,
		"total", len(pubs),
		"duration", totalDuration,
	)
	gn.Info(`Downloads complete
Publishers succeeded: %d, failed %d, total %d.
Elapsed time: <em>%s</em>
`,
		successCount, errorCount, len(pubs), totalDuration,
	)

	if errorCount > 0 && successCount == 0 {
		return AllPublishersFailedError(errorCount)
	}
	return nil
}

func (d *downloader) downloadPublisher(
	ctx context.Context,
	p publisher.Publisher,
) (string, error) {
	req := gbif.PreservedSpecimens(
		p.UUID,
		d.cfg.Download.CutoffDate,
		d.cfg.GBIF.User,
		d.cfg.GBIF.Email,
	)

	key, err := d.client.SubmitDownload(ctx, req)
	if err != nil {
		return "", SubmitError(p.Name, err)
	}
	slog.Info("Download requested", "publisher", p.Name, "key", key)
	gn.Info("Requested download <em>%s</em>", key)

	meta, err := d.wait(ctx, p, key)
	if err != nil {
		return "", err
	}
	if meta.Key == "" {
		meta.Key = key
	}
	if meta.TotalRecords > 0 {
		gn.Info("Download is ready, records: <em>%s</em>",
			humanize.Comma(meta.TotalRecords))
	}

	path := filepath.Join(d.cfg.Paths.ArchiveDir, p.ArchiveName())
	if err = d.fetch(ctx, p, meta, path); err != nil {
		return "", err
	}
	return path, nil
}

// wait polls the status of a download job with exponential backoff until
// the job succeeds, fails or the maximum wait time is exceeded.
func (d *downloader) wait(
	ctx context.Context,
	p publisher.Publisher,
	key string,
) (gbif.DownloadMeta, error) {
	var status gbif.Status
	op := func() (gbif.DownloadMeta, error) {
		meta, err := d.client.DownloadStatus(ctx, key)
		if err != nil {
			return meta, backoff.Permanent(err)
		}
		status = meta.Status
		switch {
		case meta.Status == gbif.StatusSucceeded:
			return meta, nil
		case meta.Status.IsTerminal():
			return meta, backoff.Permanent(
				DownloadFailedError(p.Name, key, meta.Status),
			)
		default:
			return meta, errNotReady
		}
	}

	notify := func(_ error, next time.Duration) {
		slog.Info("Download is not ready",
			"publisher", p.Name,
			"key", key,
			"status", status,
			"next_check", next.Round(time.Second).String(),
		)
	}

	bo := backoff.WithContext(d.newBackOff(), ctx)
	meta, err := backoff.RetryNotifyWithData(op, bo, notify)
	switch {
	case err == nil:
		return meta, nil
	case ctx.Err() != nil:
		return meta, CancelledError(ctx.Err())
	case errors.Is(err, errNotReady):
		return meta, DownloadTimeoutError(
			p.Name, key, status, d.cfg.Download.PollMaxWait,
		)
	default:
		return meta, err
	}
}

var errNotReady = errors.New("download is not ready")

func (d *downloader) newBackOff() backoff.BackOff {
	return backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(d.cfg.Download.PollInterval),
		backoff.WithMultiplier(1.5),
		backoff.WithMaxInterval(d.cfg.Download.PollMaxInterval),
		backoff.WithMaxElapsedTime(d.cfg.Download.PollMaxWait),
	)
}

// fetch saves the archive to a temporary file and renames it when the
// transfer is complete.
func (d *downloader) fetch(
	ctx context.Context,
	p publisher.Publisher,
	meta gbif.DownloadMeta,
	path string,
) error {
	key := meta.Key
	partPath := path + ".part"
	f, err := os.Create(partPath)
	if err != nil {
		return FetchError(p.Name, key, err)
	}

	bar := newProgressBar(p.Name)
	n, err := d.client.FetchDownload(
		ctx, meta, bar.NewProxyWriter(f), func(total int64) {
			if total > 0 {
				bar.SetTotal(total)
			}
		},
	)
	bar.Finish()

	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(partPath, path)
	}
	if err != nil {
		_ = os.Remove(partPath)
		return FetchError(p.Name, key, err)
	}

	slog.Info("Archive downloaded",
		"publisher", p.Name,
		"key", key,
		"bytes", n,
	)
	return nil
}

// newProgressBar creates a byte counting progress bar. Total is set
// when the size of the archive becomes known.
func newProgressBar(prefix string) *pb.ProgressBar {
	bar := pb.Full.Start64(0)
	bar.Set(pb.Bytes, true)
	bar.Set("prefix", prefix+" ")
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
