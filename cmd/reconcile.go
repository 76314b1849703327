/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gbifreport/internal/iogbif"
	"github.com/gnames/gbifreport/internal/ioreconcile"
	"github.com/gnames/gbifreport/pkg/config"
	"github.com/gnames/gbifreport/pkg/reconcile"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getReconcileCmd returns the reconcile command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getReconcileCmd() *cobra.Command {
	var withSQLite bool

	reconcileCmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Count and deduplicate records of downloaded archives",
		Long: `Reconcile occurrence records of downloaded archives.

This command:
  1. Finds {Publisher_Name}_*.zip archives in the archive directory
  2. Extracts them and reads tab-delimited data files
  3. Finds records sharing a catalog number, the first one is kept,
     later copies are counted as duplicates of their datasets
  4. Looks up dataset titles in GBIF registry
  5. Writes reports to the output directory:
     - all_publishers_dataset_counts.csv
     - all_publishers_summary.csv
     - duplicate_occurrences.csv
     - reconcile.sqlite (with --sqlite)

Publishers without archives are skipped.

Examples:
  gbifreport reconcile
  gbifreport reconcile -a ./zip -o ./output
  gbifreport reconcile --sqlite`,
		Aliases: []string{"rec"},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runReconcile(cmd, withSQLite)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	reconcileCmd.Flags().StringP(
		"archive-dir", "a", "",
		"directory with downloaded archives",
	)
	reconcileCmd.Flags().StringP(
		"output-dir", "o", "",
		"directory for reports",
	)
	reconcileCmd.Flags().String(
		"file-pattern", "",
		"pattern of data files inside archives",
	)
	reconcileCmd.Flags().BoolVar(
		&withSQLite, "sqlite", false,
		"also save reports to a SQLite database",
	)

	return reconcileCmd
}

func runReconcile(cmd *cobra.Command, withSQLite bool) error {
	var reconcileOpts []config.Option
	reconcileOpts = append(reconcileOpts,
		stringFlagOpt(cmd, "archive-dir", config.OptPathsArchiveDir)...)
	reconcileOpts = append(reconcileOpts,
		stringFlagOpt(cmd, "output-dir", config.OptPathsOutputDir)...)
	reconcileOpts = append(reconcileOpts,
		stringFlagOpt(cmd, "file-pattern", config.OptReconcileFilePattern)...)
	if cmd.Flags().Changed("sqlite") {
		reconcileOpts = append(reconcileOpts, config.OptReconcileSQLite(withSQLite))
	}
	cfg.Update(reconcileOpts)

	pubs, err := loadPublishers()
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	r := ioreconcile.New(cfg, iogbif.New(cfg))
	acc, err := r.Reconcile(ctx, pubs)
	if err != nil {
		return err
	}

	if err = printSummaries(acc); err != nil {
		return err
	}

	gn.Info(`Duplicate records: <em>%s</em>

Next steps:
	 - Run '<em>gbifreport literature</em>' to find literature citing the datasets
`, humanize.Comma(int64(acc.DuplicatesNum())))
	return nil
}

func printSummaries(acc *reconcile.Accumulator) error {
	header := []string{"Publisher", "Total", "Duplicates", "Unique"}
	var rows [][]string
	for _, s := range acc.Summaries() {
		rows = append(rows, summaryRow(s))
	}
	if len(rows) == 0 {
		return nil
	}
	return printTable(os.Stdout, header, rows, summaryRow(acc.Total()))
}

func summaryRow(s reconcile.Summary) []string {
	return []string{
		s.Publisher,
		strconv.Itoa(s.Total),
		strconv.Itoa(s.Duplicates),
		strconv.Itoa(s.Unique),
	}
}
