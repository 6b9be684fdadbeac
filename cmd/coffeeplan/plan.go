package main

import (
	"github.com/spf13/cobra"
)

var planScenarioPath string

func newPlanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Run a planning scenario from a JSON scenario file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd.Context(), planScenarioPath, format)
		},
	}
	cmd.Flags().StringVar(&planScenarioPath, "scenario", "", "Path to scenario JSON file (required)")
	_ = cmd.MarkFlagRequired("scenario")
	return cmd
}

var replanScenarioPath string

func newReplanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replan",
		Short: "Run a correction-mode scenario file",
		Long: `replan runs the same pipeline as plan; a scenario file intended for
replan sets request.is_correction_mode and request.correction so the
planning core takes the correction path instead of a fresh plan.
A scenario file carries no prior plan and each run starts with an empty
in-memory plan store, so request.correction.prior_plan_ref does not
resolve and the run ends with CorrectionPreconditionFailed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd.Context(), replanScenarioPath, format)
		},
	}
	cmd.Flags().StringVar(&replanScenarioPath, "scenario", "", "Path to scenario JSON file (required)")
	_ = cmd.MarkFlagRequired("scenario")
	return cmd
}
