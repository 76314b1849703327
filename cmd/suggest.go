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
	"strings"

	"github.com/gnames/gbifreport/internal/iogbif"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getSuggestCmd returns the suggest command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getSuggestCmd() *cobra.Command {
	suggestCmd := &cobra.Command{
		Use:   "suggest <organization name>",
		Short: "Find GBIF keys of publishing organizations",
		Long: `Look up publishing organizations in GBIF registry by name.

Prints titles and keys of matching organizations. Use the keys as
'uuid' values in publishers.yaml.

Examples:
  gbifreport suggest "Natural History Museum of Denmark"
  gbifreport suggest Aarhus`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runSuggest(strings.Join(args, " "))
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	return suggestCmd
}

func runSuggest(name string) error {
	ctx, stop := signalContext()
	defer stop()

	cl := iogbif.New(cfg)
	orgs, err := cl.SuggestOrganizations(ctx, name)
	if err != nil {
		return err
	}

	if len(orgs) == 0 {
		gn.Warn("No organizations found for <em>%s</em>", name)
		return nil
	}

	rows := make([][]string, len(orgs))
	for i, o := range orgs {
		rows[i] = []string{o.Title, o.Key}
	}
	return printTable(os.Stdout, []string{"Title", "Key"}, rows, nil)
}
