package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/claude/periodize/internal/api"
	"github.com/spf13/cobra"
)

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <program>...",
		Short: "Simulate several programs side by side",
		Long: `Simulate several programs concurrently. Each argument is one program
given as a comma list:

  periodize compare Strength,Power Hypertrophy,Strength,Speed`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := rootOpts.formatter(cmd)
			programs := make([][]string, 0, len(args))
			for _, arg := range args {
				programs = append(programs, splitBlocks([]string{arg}))
			}

			p, err := rootOpts.planner()
			if err != nil {
				return formatter.Fail(err)
			}
			resp, err := p.Compare(cmd.Context(), programs)
			if err != nil {
				return formatter.Fail(err)
			}
			return formatter.Success(resp, func(w io.Writer) error {
				return writeComparison(w, resp)
			})
		},
	}
}

func writeComparison(w io.Writer, resp *api.CompareResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPROGRAM\tWEEKS\tPEAK\tTRANSITIONS")
	for i, r := range resp.Results {
		fmt.Fprintf(tw, "%d\t%v\t%d\t%d\t%v\n", i+1, r.Program, r.TotalWeeks, r.PeakWeek, r.Transitions)
	}
	return tw.Flush()
}
