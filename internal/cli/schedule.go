package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/claude/periodize/internal/api"
	"github.com/spf13/cobra"
)

// NewScheduleCommand creates the schedule command.
func NewScheduleCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule <block>...",
		Short: "Print the Gantt layout of a block program",
		Long: `Lay a block program out as tasks: one main task per block, mini-blocks
of the previous block's ability inside the next block, and a final peak week.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := rootOpts.formatter(cmd)
			p, err := rootOpts.planner()
			if err != nil {
				return formatter.Fail(err)
			}
			resp, err := p.Schedule(cmd.Context(), splitBlocks(args))
			if err != nil {
				return formatter.Fail(err)
			}
			return formatter.Success(resp, func(w io.Writer) error {
				return writeSchedule(w, resp)
			})
		},
	}
}

func writeSchedule(w io.Writer, resp *api.ScheduleResponse) error {
	if len(resp.Tasks) == 0 {
		fmt.Fprintln(w, "Empty program: nothing to schedule")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TASK\tCATEGORY\tSTART\tWEEKS")
	for _, t := range resp.Tasks {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", t.Label, t.Category, t.StartWeek, t.DurationWeeks)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%d lane(s): %v\n", len(resp.Lanes), resp.Lanes)
	return nil
}
