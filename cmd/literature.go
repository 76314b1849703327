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
	"path/filepath"
	"strconv"

	"github.com/gnames/gbifreport/internal/iogbif"
	"github.com/gnames/gbifreport/internal/ioliterature"
	"github.com/gnames/gbifreport/pkg/config"
	"github.com/gnames/gbifreport/pkg/literature"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getLiteratureCmd returns the literature command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getLiteratureCmd() *cobra.Command {
	var year int

	literatureCmd := &cobra.Command{
		Use:   "literature",
		Short: "Find literature citing reconciled datasets",
		Long: `Search GBIF literature that cites datasets of the reconciled publishers.

This command:
  1. Reads dataset keys from all_publishers_dataset_counts.csv
  2. Pages through GBIF literature search for every dataset and year
  3. Joins found publications with dataset publisher and name
  4. Writes gbif_publications_{year}.xlsx with sheets:
     - All Results: every found publication
     - Publisher Counts: distinct titles per publisher
     - one sheet per publisher with its distinct titles
  5. Writes the joined publications to gbif_publications.csv

Examples:
  gbifreport literature
  gbifreport literature --year 2024
  gbifreport literature -y 2024 -i ./output/all_publishers_dataset_counts.csv`,
		Aliases: []string{"lit"},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runLiterature(cmd, year)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	literatureCmd.Flags().IntVarP(
		&year, "year", "y", 0,
		"publication year of literature",
	)
	literatureCmd.Flags().StringP(
		"input", "i", "",
		"dataset counts file (default {output_dir}/"+config.DatasetCountsFile+")",
	)
	literatureCmd.Flags().StringP(
		"output-dir", "o", "",
		"directory for reports",
	)

	return literatureCmd
}

func runLiterature(cmd *cobra.Command, year int) error {
	var litOpts []config.Option
	litOpts = append(litOpts,
		stringFlagOpt(cmd, "output-dir", config.OptPathsOutputDir)...)
	if cmd.Flags().Changed("year") {
		litOpts = append(litOpts, config.OptLiteratureYear(year))
	}
	cfg.Update(litOpts)

	input, _ := cmd.Flags().GetString("input")
	if input == "" {
		input = filepath.Join(cfg.Paths.OutputDir, config.DatasetCountsFile)
	}

	ctx, stop := signalContext()
	defer stop()

	f := ioliterature.New(cfg, iogbif.New(cfg))
	rep, err := f.Fetch(ctx, input)
	if err != nil {
		return err
	}

	return printTitleCounts(rep)
}

func printTitleCounts(rep *literature.Report) error {
	var rows [][]string
	for _, p := range rep.Publishers {
		rows = append(rows, []string{p.Publisher, strconv.Itoa(len(p.Titles))})
	}
	if len(rows) == 0 {
		gn.Info("No literature found for <em>%d</em>", rep.Year)
		return nil
	}
	return printTable(
		os.Stdout,
		[]string{"Publisher", "Unique titles"},
		rows,
		[]string{"Total", strconv.Itoa(rep.Total)},
	)
}
