package ioreconcile

import (
	"encoding/csv"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"

	"github.com/gnames/gbifreport/internal/iofs"
	"github.com/gnames/gbifreport/pkg/config"
	"github.com/gnames/gbifreport/pkg/reconcile"
)

var (
	datasetCountsHeader = []string{
		"publisher",
		"datasetName",
		"datasetKey",
		"preservedSpecimenCountTotal",
		"preservedSpecimenCountUnique",
		"duplicatesCountedInOtherDatasets",
	}

	summaryHeader = []string{
		"publisher",
		"totalPreservedSpecimens",
		"duplicatesCountedInOtherDatasets",
		"uniquePreservedSpecimens",
	}
)

// writeReports saves accumulated tables to the output directory. Every
// file replaces the result of a previous run only when it is written
// completely.
func (r *reconciler) writeReports(acc *reconcile.Accumulator) error {
	dir := r.cfg.Paths.OutputDir

	counts := acc.DatasetCounts()
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{
			c.Publisher,
			c.DatasetName,
			c.DatasetKey,
			strconv.Itoa(c.Total),
			strconv.Itoa(c.Unique),
			strconv.Itoa(c.Duplicates),
		})
	}
	path := filepath.Join(dir, config.DatasetCountsFile)
	if err := writeCSV(path, datasetCountsHeader, rows); err != nil {
		return err
	}

	sums := acc.Summaries()
	rows = make([][]string, 0, len(sums))
	for _, s := range sums {
		rows = append(rows, []string{
			s.Publisher,
			strconv.Itoa(s.Total),
			strconv.Itoa(s.Duplicates),
			strconv.Itoa(s.Unique),
		})
	}
	path = filepath.Join(dir, config.SummaryFile)
	if err := writeCSV(path, summaryHeader, rows); err != nil {
		return err
	}

	dups := acc.Duplicates()
	path = filepath.Join(dir, config.DuplicatesFile)
	if err := writeCSV(path, dups.Columns, dups.Rows); err != nil {
		return err
	}

	slog.Info("Reports saved",
		"dir", dir,
		"datasets", len(counts),
		"publishers", len(sums),
		"duplicates", dups.Len(),
	)

	if !r.cfg.Reconcile.SQLite {
		return nil
	}
	return writeSQLite(filepath.Join(dir, config.ReconcileDBFile), acc)
}

func writeCSV(path string, header []string, rows [][]string) error {
	return iofs.WriteFile(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(header); err != nil {
			return err
		}
		if err := cw.WriteAll(rows); err != nil {
			return err
		}
		return cw.Error()
	})
}
