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
	"github.com/gnames/gbifreport/internal/iodownload"
	"github.com/gnames/gbifreport/internal/iogbif"
	"github.com/gnames/gbifreport/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getDownloadCmd returns the download command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getDownloadCmd() *cobra.Command {
	downloadCmd := &cobra.Command{
		Use:   "download",
		Short: "Download preserved specimen archives from GBIF",
		Long: `Request GBIF occurrence downloads for every publisher.

This command:
  1. Reads publishers from publishers.yaml
  2. Requests a download of present preserved specimens with event date
     not later than the cutoff date (SIMPLE_CSV format)
  3. Waits until GBIF prepares the download
  4. Saves the archive as {archive_dir}/{Publisher_Name}_download.zip

GBIF credentials are required (GBIF_USER, GBIF_PASSWORD).
A failed publisher does not stop the others.

Examples:
  gbifreport download
  gbifreport download --cutoff-date 2024-12-31
  gbifreport download -c 2024-12-31 -a ./zip`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runDownload(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	downloadCmd.Flags().StringP(
		"cutoff-date", "c", "",
		"latest event date of records YYYY-MM-DD",
	)
	downloadCmd.Flags().StringP(
		"archive-dir", "a", "",
		"directory for downloaded archives",
	)
	downloadCmd.Flags().Duration(
		"max-wait", 0,
		"maximum wait for a download to be prepared",
	)

	return downloadCmd
}

func runDownload(cmd *cobra.Command) error {
	var downloadOpts []config.Option
	downloadOpts = append(downloadOpts,
		stringFlagOpt(cmd, "cutoff-date", config.OptDownloadCutoffDate)...)
	downloadOpts = append(downloadOpts,
		stringFlagOpt(cmd, "archive-dir", config.OptPathsArchiveDir)...)
	if cmd.Flags().Changed("max-wait") {
		d, _ := cmd.Flags().GetDuration("max-wait")
		downloadOpts = append(downloadOpts, config.OptDownloadPollMaxWait(d))
	}
	cfg.Update(downloadOpts)

	pubs, err := loadPublishers()
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	d := iodownload.New(cfg, iogbif.New(cfg))
	if err = d.Download(ctx, pubs); err != nil {
		return err
	}

	gn.Info(`Next steps:
	 - Run '<em>gbifreport reconcile</em>' to count records of the archives
`)
	return nil
}
