package mutagens

import (
	"fmt"

	"helix.dev/pkg/helix/internal/domain/codons"
	m "helix.dev/pkg/helix/internal/model"
)

var missense = substitution{
	kind:         m.MutationMissense,
	label:        "missense",
	none:         ErrNoMissense,
	alternatives: missenseAlternatives,
	describe: func(position int, from, to m.Codon) string {
		return fmt.Sprintf("Missense mutation at codon %d: %s (%s) → %s (%s)",
			position, from, opcodeName(from), to, opcodeName(to))
	},
}

// missenseAlternatives lists every codon that encodes an opcode other than
// the current one, excluding STOP.
func missenseAlternatives(chunks []string, _ []bool, i int) []m.Codon {
	current, ok := codons.OpcodeOf(m.Codon(chunks[i]))
	if !ok {
		return nil
	}

	var out []m.Codon

	for _, codon := range codons.All() {
		op, _ := codons.OpcodeOf(codon)
		if op == current || op == m.OpStop {
			continue
		}

		out = append(out, codon)
	}

	return out
}

// Missense replaces one codon with a codon encoding a different, non-STOP
// opcode.
func Missense(rng Rand, genome string, position int) (m.MutationResult, error) {
	return missense.apply(rng, genome, position)
}
