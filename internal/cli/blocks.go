package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/claude/periodize/internal/api"
	"github.com/spf13/cobra"
)

// NewBlocksCommand creates the blocks command.
func NewBlocksCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "blocks",
		Short:         "List block kinds and abilities",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := rootOpts.formatter(cmd)
			p, err := rootOpts.planner()
			if err != nil {
				return formatter.Fail(err)
			}
			resp, err := p.Registry(cmd.Context())
			if err != nil {
				return formatter.Fail(err)
			}
			return formatter.Success(resp, func(w io.Writer) error {
				return writeRegistry(w, resp)
			})
		},
	}
}

func writeRegistry(w io.Writer, resp *api.RegistryResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BLOCK\tABILITY\tWEEKS\tINTENSITY\tPHASES")
	for _, b := range resp.Blocks {
		phases := make([]string, 0, len(b.Phases))
		for _, ph := range b.Phases {
			phases = append(phases, fmt.Sprintf("%s(%d)", ph.Name, ph.Weeks))
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d-%d%%\t%s\n",
			b.Kind, b.Ability, b.DurationWeeks, b.Intensity.Min, b.Intensity.Max, strings.Join(phases, " "))
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "ABILITY\tRESIDUAL DAYS\tMINI-BLOCK RETENTION\tMINI-BLOCK EVERY")
	for _, a := range resp.Abilities {
		fmt.Fprintf(tw, "%s\t%d\t%.0f%%\t%d weeks\n",
			a.Name, a.ResidualDays, a.MiniBlockRetention*100, a.MiniBlockIntervalWeeks)
	}
	return tw.Flush()
}
