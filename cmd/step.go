package cmd

import (
	"github.com/spf13/cobra"

	"helix.dev/pkg/helix/internal/domain"
	m "helix.dev/pkg/helix/internal/model"
)

// stepCmd represents the step command.
var stepCmd = newStepCmd()

func newStepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "step <genome|trace>",
		Short: "Step through an execution trace",
		Long: `Execute a genome, or load a trace written by "helix run", and walk through
it one instruction at a time. In a terminal this opens an interactive viewer;
otherwise every snapshot is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Step(cmd.Context(), domain.StepArgs{Path: m.Path(args[0])})
		},
	}
}

func init() {
	rootCmd.AddCommand(stepCmd)
}
