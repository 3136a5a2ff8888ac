package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	statepkg "github.com/kk-code-lab/dirpanel/internal/state"
	"github.com/spf13/cobra"
)

func newListCmd(c *cli) *cobra.Command {
	var (
		sortBy string
		desc   bool
		search string
	)

	cmd := &cobra.Command{
		Use:     "list [dir]",
		Short:   "Print a directory listing once and exit",
		Aliases: []string{"ls"},
		Long: `Print the same listing the panel shows: hidden entries skipped, folders
first, folder sizes computed recursively.

Examples:
  dirpanel list                     # current directory by name
  dirpanel list ~/src --sort size   # biggest last
  dirpanel list --sort mtime --desc # most recently modified first
  dirpanel list --search test       # names containing "test"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := statepkg.ParseSortKey(sortBy)
			if err != nil {
				return err
			}
			workspace, start, err := c.resolveDirs(args)
			if err != nil {
				return err
			}

			state := statepkg.NewAppState(workspace, start)
			state.SortKey = key
			if desc {
				state.SortDir = statepkg.Descending
			}
			state.SearchText = search

			reducer := statepkg.NewStateReducer(statepkg.Options{
				Workspace: statepkg.StaticWorkspace(workspace),
				Logger:    c.logger,
			})
			reducer.Refresh(state)

			if state.View.Err != nil {
				return errors.New(state.View.Message)
			}
			return printListing(cmd.OutOrStdout(), state.View)
		},
	}

	cmd.Flags().StringVarP(&sortBy, "sort", "s", string(statepkg.SortByName), "sort column: name, size, createdAt (ctime) or modifiedAt (mtime)")
	cmd.Flags().BoolVarP(&desc, "desc", "d", false, "sort descending")
	cmd.Flags().StringVar(&search, "search", "", "only show names containing this text (case-insensitive)")
	return cmd
}

func printListing(out io.Writer, view statepkg.ViewModel) error {
	if len(view.Rows) == 0 {
		_, err := fmt.Fprintln(out, statepkg.EmptyMessage)
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for i, col := range view.Columns {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, col.Label)
		if ind := col.Indicator(); ind != "" {
			fmt.Fprint(w, " ", ind)
		}
	}
	fmt.Fprintln(w)

	for _, row := range view.Rows {
		name := row.Name
		if row.IsDir() {
			name += "/"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, row.Size, row.Created, row.Modified)
	}
	return w.Flush()
}
