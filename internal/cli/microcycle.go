package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/claude/periodize/internal/models"
	"github.com/spf13/cobra"
)

// NewMicrocycleCommand creates the microcycle command.
func NewMicrocycleCommand(rootOpts *RootOptions) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:           "microcycle",
		Short:         "Print the weekly training-day template",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := rootOpts.formatter(cmd)
			p, err := rootOpts.planner()
			if err != nil {
				return formatter.Fail(err)
			}
			sessions, err := p.Microcycle(cmd.Context(), days)
			if err != nil {
				return formatter.Fail(err)
			}
			return formatter.Success(sessions, func(w io.Writer) error {
				return writeMicrocycle(w, sessions)
			})
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 3, "training days per week (3-6)")

	return cmd
}

func writeMicrocycle(w io.Writer, sessions []models.DaySession) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DAY\tSESSION\tLOAD")
	for _, s := range sessions {
		fmt.Fprintf(tw, "%s\t%s\t%.1f\n", s.Day, s.Training, s.Load)
	}
	return tw.Flush()
}
