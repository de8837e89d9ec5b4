package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"text/tabwriter"

	"github.com/claude/periodize/internal/api"
	"github.com/claude/periodize/internal/models"
	"github.com/spf13/cobra"
)

// Model names accepted by --model.
const (
	ModelBaseline  = "baseline"
	ModelAugmented = "augmented"
)

// SimulateOptions holds flags for the simulate command.
type SimulateOptions struct {
	Model        string
	TrainingDays int
}

// NewSimulateCommand creates the simulate command.
func NewSimulateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SimulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate <block>...",
		Short: "Simulate ability retention for a block program",
		Long: `Simulate a block program and print the weekly retention of every
ability. The baseline model lets an ability decay once its block ends; the
augmented model adds the retention of periodic mini-blocks.

Blocks may be given as separate arguments or as a comma list:

  periodize simulate Strength Power Speed
  periodize simulate Strength,Power,Speed --model augmented`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(rootOpts, opts, splitBlocks(args), cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Model, "model", "m", ModelBaseline, "retention model to print (baseline|augmented)")
	cmd.Flags().IntVarP(&opts.TrainingDays, "days", "d", 0, "also print the microcycle for this many training days (3-6)")

	return cmd
}

func runSimulate(rootOpts *RootOptions, opts *SimulateOptions, blocks []string, cmd *cobra.Command) error {
	formatter := rootOpts.formatter(cmd)
	if opts.Model != ModelBaseline && opts.Model != ModelAugmented {
		return formatter.Fail(fmt.Errorf("invalid model %q: must be %s or %s", opts.Model, ModelBaseline, ModelAugmented))
	}

	p, err := rootOpts.planner()
	if err != nil {
		return formatter.Fail(err)
	}
	formatter.VerboseLog("Simulating %d block(s): %v", len(blocks), blocks)

	resp, err := p.Simulate(cmd.Context(), blocks, opts.TrainingDays)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(resp, func(w io.Writer) error {
		return writeSimulation(w, resp, opts.Model)
	})
}

func writeSimulation(w io.Writer, resp *api.SimulationResponse, model string) error {
	fmt.Fprintf(w, "Program: %v\n", resp.Program)
	if resp.PeakWeek < 0 {
		fmt.Fprintf(w, "Total weeks: %d (no peak)\n\n", resp.TotalWeeks)
	} else {
		fmt.Fprintf(w, "Total weeks: %d, peak week: %d\n\n", resp.TotalWeeks, resp.PeakWeek)
	}

	curves := resp.Baseline
	if model == ModelAugmented {
		curves = resp.Augmented
	}
	abilities := orderedAbilities(resp, curves)

	fmt.Fprintf(w, "Retention (%s)\n", model)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "Week\t")
	for _, a := range abilities {
		fmt.Fprintf(tw, "%s\t", a)
	}
	fmt.Fprintln(tw)
	weeks := 0
	if len(abilities) > 0 {
		weeks = len(curves[abilities[0]])
	}
	for week := 0; week < weeks; week++ {
		fmt.Fprintf(tw, "%d\t", week)
		for _, a := range abilities {
			fmt.Fprintf(tw, "%.1f\t", curves[a][week].Percent)
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if model == ModelBaseline && len(resp.Markers) > 0 {
		fmt.Fprintln(w, "\nMini-block markers")
		for _, m := range resp.Markers {
			fmt.Fprintf(w, "  week %d: %s\n", m.Week, m.Ability)
		}
	}

	if len(resp.Microcycle) > 0 {
		fmt.Fprintln(w)
		return writeMicrocycle(w, resp.Microcycle)
	}
	return nil
}

// orderedAbilities lists abilities in registry order, which the
// recommendations preserve, so columns are stable across runs.
func orderedAbilities(resp *api.SimulationResponse, curves models.RetentionCurves) []models.Ability {
	out := make([]models.Ability, 0, len(curves))
	for _, rec := range resp.Recommendations {
		if _, ok := curves[rec.Ability]; ok {
			out = append(out, rec.Ability)
		}
	}
	for _, a := range slices.Sorted(maps.Keys(curves)) {
		if !slices.Contains(out, a) {
			out = append(out, a)
		}
	}
	return out
}
