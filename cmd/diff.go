package cmd

import (
	"github.com/spf13/cobra"

	"helix.dev/pkg/helix/internal/domain"
	m "helix.dev/pkg/helix/internal/model"
)

// diffCmd represents the diff command.
var diffCmd = newDiffCmd()

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <original> <mutated>",
		Short: "Compare two genomes codon by codon",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Diff(cmd.Context(), domain.DiffArgs{
				Original: m.Path(args[0]),
				Mutated:  m.Path(args[1]),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
