package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sarchlab/copybench/datarecording"
	"github.com/sarchlab/copybench/report"
)

type showOptions struct {
	strategy string
	failed   bool
	limit    int
}

var showOpts showOptions

var showCmd = &cobra.Command{
	Use:   "show <recording.sqlite3>",
	Short: "Print the outcomes of a recorded run.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return show(cmd.Context(), cmd.OutOrStdout(), args[0], showOpts)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	f := showCmd.Flags()
	f.StringVar(&showOpts.strategy, "strategy", "",
		"Only show outcomes of this strategy")
	f.BoolVar(&showOpts.failed, "failed", false,
		"Only show outcomes that did not succeed")
	f.IntVar(&showOpts.limit, "limit", 0,
		"Show at most this many outcomes (default: all)")
}

func (o showOptions) params() datarecording.QueryParams {
	params := datarecording.QueryParams{
		OrderBy: "rowid",
		Limit:   o.limit,
	}

	var where []string

	if o.strategy != "" {
		where = append(where, "Strategy = ?")
		params.Args = append(params.Args, o.strategy)
	}

	if o.failed {
		where = append(where, "Success = ?")
		params.Args = append(params.Args, false)
	}

	for i, w := range where {
		if i > 0 {
			params.Where += " AND "
		}

		params.Where += w
	}

	return params
}

func show(ctx context.Context, w io.Writer, path string, o showOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	reader, err := datarecording.NewReader(path)
	if err != nil {
		return err
	}
	defer reader.Close()

	info, err := datarecording.Rows[datarecording.RunInfo](ctx, reader,
		datarecording.RunInfoTable, datarecording.QueryParams{OrderBy: "rowid"})
	if err != nil {
		return err
	}

	for _, i := range info {
		fmt.Fprintf(w, "%s: %s\n", i.Property, i.Value)
	}

	params := o.params()

	rows, err := datarecording.Rows[report.OutcomeRow](ctx, reader,
		report.OutcomeTable, params)
	if err != nil {
		return err
	}

	total, err := reader.Count(ctx, report.OutcomeTable, params)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LABEL\tBYTES\tCYCLES\tMB/S\tSTATE\tREASON")

	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.2f\t%s\t%s\n",
			r.Label, r.Bytes, r.Cycles, r.BandwidthMBps, r.State, r.Reason)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "%d of %d outcomes\n", len(rows), total)

	return nil
}
