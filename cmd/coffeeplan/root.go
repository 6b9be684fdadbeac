package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// format is the shared --format flag every subcommand that prints a
// PlanResult reads, grounded on acdtunes-spacetraders/gobot's
// NewRootCommand (package-level persistent-flag variables bound once on
// the root command).
var format string

// newRootCommand builds the coffeeplan CLI, the analogue of the teacher's
// cmd/mrp entry point rebuilt on cobra instead of hand-rolled flag
// parsing, per SPEC_FULL's ambient-stack decision.
func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "coffeeplan",
		Short: "Coffee procurement planning CLI",
		Long: `coffeeplan runs the procurement planning core end to end against either a
JSON scenario file or a built-in demo scenario.

Examples:
  coffeeplan demo
  coffeeplan plan --scenario scenarios/five_offices.json
  coffeeplan replan --scenario scenarios/five_offices_correction.json --format json`,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	root.PersistentFlags().StringVar(&format, "format", "text", "Output format: text, json")

	root.AddCommand(newPlanCommand())
	root.AddCommand(newReplanCommand())
	root.AddCommand(newDemoCommand())

	return root
}

// Execute runs the root command.
func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
