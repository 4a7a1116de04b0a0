package cmd

import (
	"github.com/spf13/cobra"

	"helix.dev/pkg/helix/internal/domain"
)

var checkCallsFlag bool

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Validate genomes and list their codons",
		Long:  checkLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Check(cmd.Context(), domain.CheckArgs{
				Paths: parsePaths(args),
				Calls: checkCallsFlag,
			})
		},
	}

	cmd.Flags().BoolVar(&checkCallsFlag, "calls", false, "also list the renderer calls a run would make")

	return cmd
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
