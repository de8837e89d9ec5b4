package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/claude/periodize/internal/engine"
	"github.com/claude/periodize/internal/mcp"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Registry string // registry YAML; empty uses the built-in one
	Server   string // base URL of a remote periodize server
	APIKey   string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the periodize CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "periodize",
		Short: "Block periodization simulator",
		Long: `Simulate block-periodized training programs.

A program is an ordered list of block kinds (Strength, Power, Speed,
Hypertrophy). Commands run locally against the built-in registry, or
against a remote server with --server.`,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Registry, "registry", "", "registry YAML file (default: built-in)")
	cmd.PersistentFlags().StringVar(&opts.Server, "server", "", "remote server URL, e.g. http://periodize:8080")
	cmd.PersistentFlags().StringVar(&opts.APIKey, "api-key", "", "API key for --server")

	// Add subcommands
	cmd.AddCommand(NewSimulateCommand(opts))
	cmd.AddCommand(NewScheduleCommand(opts))
	cmd.AddCommand(NewCompareCommand(opts))
	cmd.AddCommand(NewBlocksCommand(opts))
	cmd.AddCommand(NewMicrocycleCommand(opts))

	return cmd
}

// planner returns the backend selected by the global flags.
func (o *RootOptions) planner() (mcp.Planner, error) {
	if o.Server != "" {
		return mcp.NewHTTPClient(o.Server, o.APIKey), nil
	}
	eng, err := engine.Open(o.Registry, engine.Options{})
	if err != nil {
		return nil, err
	}
	return mcp.NewLocal(eng), nil
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// splitBlocks accepts block kinds as separate arguments or comma lists.
func splitBlocks(args []string) []string {
	blocks := []string{}
	for _, arg := range args {
		for _, b := range strings.Split(arg, ",") {
			if b = strings.TrimSpace(b); b != "" {
				blocks = append(blocks, b)
			}
		}
	}
	return blocks
}
