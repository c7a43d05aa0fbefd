package portview

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/0xa1bed0/deskutils/internal/logs"
	"github.com/0xa1bed0/deskutils/internal/porttable"
	"github.com/0xa1bed0/deskutils/internal/runtime"
	"github.com/0xa1bed0/deskutils/internal/tui"
	"github.com/0xa1bed0/deskutils/internal/ui"
)

type listOptions struct {
	sortBy     string
	descending bool
	numeric    bool
}

func newListCmd() *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print listening ports as a table.",
		Long:    "Print TCP LISTEN and UDP sockets with their PID and process name, one per line.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.sortBy, "sort", "", "sort by column: type, port, pid or name")
	cmd.Flags().BoolVar(&opts.descending, "desc", false, "sort in descending order")
	cmd.Flags().BoolVar(&opts.numeric, "numeric", false, "compare port and PID as numbers")

	return cmd
}

func runList(cmd *cobra.Command, opts listOptions) error {
	logs.Debugf("running list...")
	rt := runtime.FromContextOrPanic(cmd.Context())
	return listPorts(cmd.Context(), cmd.OutOrStdout(), newEnumerator(rt), opts)
}

// listPorts renders whatever enum returned, even on error, and then reports
// the error.
func listPorts(ctx context.Context, w io.Writer, enum tui.Enumerator, opts listOptions) error {
	table := porttable.New(sortMode(opts.numeric))

	var sortCol porttable.Column
	if opts.sortBy != "" {
		col, ok := porttable.ParseColumn(strings.ToLower(opts.sortBy))
		if !ok {
			return fmt.Errorf("unknown sort column %q (want type, port, pid or name)", opts.sortBy)
		}
		sortCol = col
	}

	records, err := enum.Enumerate(ctx)
	if err != nil {
		logs.Errorf("Failed to get port info: %v", err)
	}
	table.Replace(records)
	if opts.sortBy != "" {
		table.SortBy(sortCol, opts.descending)
	}
	logs.InfofSilent("Query completed, %d port(s)", len(records))

	if table.Len() == 0 {
		fmt.Fprintln(w, "No listening ports found")
		return err
	}

	columns := make([]ui.Column, 0, len(porttable.Columns))
	for _, col := range porttable.Columns {
		c := ui.Column{Header: col.Header()}
		if col == porttable.ColumnPort || col == porttable.ColumnPID {
			c.Align = ui.AlignRight
		}
		if col == porttable.ColumnProcessName {
			c.MaxWidth = 40
		}
		columns = append(columns, c)
	}

	out := ui.NewTable(columns...)
	out.HeaderStyle = logs.Header
	out.AddRows(table.Rows())

	if renderErr := out.Render(w); renderErr != nil {
		return renderErr
	}
	return err
}
