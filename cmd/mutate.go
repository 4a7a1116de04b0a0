package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"helix.dev/pkg/helix/internal/domain"
	"helix.dev/pkg/helix/internal/domain/mutagens"
	m "helix.dev/pkg/helix/internal/model"
)

var mutateTypeFlag string
var mutatePositionFlag int
var mutateLengthFlag int
var mutateWriteFlag string
var mutateCountFlag int

// mutateCmd represents the mutate command.
var mutateCmd = newMutateCmd()

func newMutateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mutate <genome>",
		Short: "Apply mutations to a genome and compare the runs",
		Long: `Apply a mutation to a genome and show the mutated genome, a codon diff and
how the mutation changes execution.

Positions are codon indices for silent, missense and nonsense mutations and
base indices for the others; leave --position unset to pick one at random.
With --count, several random mutations are applied to the original genome
one after another and a mutation score summarises how many were visible.

Mutation types: ` + mutationTypeNames(),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mutationType, err := parseMutationType(mutateTypeFlag)
			if err != nil {
				return err
			}

			return workflow.Mutate(cmd.Context(), domain.MutateArgs{
				Path:     m.Path(args[0]),
				Type:     mutationType,
				Position: mutatePositionFlag,
				Length:   mutateLengthFlag,
				Write:    m.Path(mutateWriteFlag),
				Count:    mutateCountFlag,
			})
		},
	}

	cmd.Flags().StringVarP(&mutateTypeFlag, "type", "t", "", "mutation type (default: cycle through all types)")
	cmd.Flags().IntVar(&mutatePositionFlag, "position", mutagens.RandomPosition, "codon or base index to mutate")
	cmd.Flags().IntVar(&mutateLengthFlag, "length", 1, "bases to insert or delete")
	cmd.Flags().StringVarP(&mutateWriteFlag, "write", "w", "", "write the mutated genome to this file")
	cmd.Flags().IntVarP(&mutateCountFlag, "count", "n", 1, "number of random mutations to apply")

	return cmd
}

func init() {
	rootCmd.AddCommand(mutateCmd)
}

func parseMutationType(name string) (m.MutationType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", nil
	}

	for _, mutationType := range m.MutationTypes() {
		if string(mutationType) == name {
			return mutationType, nil
		}
	}

	return "", fmt.Errorf("%w: %q (want one of %s)", domain.ErrUnknownMutationType, name, mutationTypeNames())
}

func mutationTypeNames() string {
	types := m.MutationTypes()
	names := make([]string, 0, len(types))

	for _, mutationType := range types {
		names = append(names, string(mutationType))
	}

	return strings.Join(names, ", ")
}
