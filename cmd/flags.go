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
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/gbifreport/internal/iopublishers"
	"github.com/gnames/gbifreport/pkg/config"
	"github.com/gnames/gbifreport/pkg/publisher"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// signalContext returns a context that is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
}

// loadPublishers reads and validates the publishers file.
func loadPublishers() ([]publisher.Publisher, error) {
	return iopublishers.New(cfg).Load()
}

// stringFlagOpt returns an option for a string flag if it was set
// explicitly.
func stringFlagOpt(
	cmd *cobra.Command,
	name string,
	fn func(string) config.Option,
) []config.Option {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	s, _ := cmd.Flags().GetString(name)
	return []config.Option{fn(s)}
}

// printTable renders rows as a text table. The footer is omitted if it
// is empty.
func printTable(w io.Writer, header []string, rows [][]string, footer []string) error {
	table := tablewriter.NewTable(w)

	hs := make([]any, len(header))
	for i, h := range header {
		hs[i] = h
	}
	table.Header(hs...)

	for _, r := range rows {
		if err := table.Append(r); err != nil {
			return err
		}
	}

	if len(footer) > 0 {
		fs := make([]any, len(footer))
		for i, f := range footer {
			fs[i] = f
		}
		table.Footer(fs...)
	}
	return table.Render()
}
