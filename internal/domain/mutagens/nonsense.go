package mutagens

import (
	"fmt"

	"helix.dev/pkg/helix/internal/domain/codons"
	m "helix.dev/pkg/helix/internal/model"
)

var nonsense = substitution{
	kind:         m.MutationNonsense,
	label:        "nonsense",
	none:         ErrNoNonsense,
	alternatives: nonsenseAlternatives,
	describe: func(position int, from, _ m.Codon) string {
		return fmt.Sprintf("Nonsense mutation at codon %d: %s (%s) → %s (STOP), program truncated",
			position, from, opcodeName(from), codons.CanonicalStop)
	},
}

// nonsenseAlternatives allows the canonical STOP on any instruction the VM
// reaches: after the first START, before the first STOP that follows it, and
// never on unknown codons or PUSH operands.
func nonsenseAlternatives(chunks []string, literal []bool, i int) []m.Codon {
	start, end := executedWindow(chunks, literal)
	if i == 0 || i <= start || i >= end || literal[i] {
		return nil
	}

	op, ok := codons.OpcodeOf(m.Codon(chunks[i]))
	if !ok || op == m.OpStart || op == m.OpStop {
		return nil
	}

	return []m.Codon{codons.CanonicalStop}
}

// executedWindow returns the index of the first START instruction (-1 when
// there is none, in which case execution begins at 0) and the index of the
// first STOP instruction after it (the codon count when there is none).
func executedWindow(chunks []string, literal []bool) (start, end int) {
	start = -1

	for i, chunk := range chunks {
		if op, ok := codons.OpcodeOf(m.Codon(chunk)); ok && !literal[i] && op == m.OpStart {
			start = i
			break
		}
	}

	for i := start + 1; i < len(chunks); i++ {
		if op, ok := codons.OpcodeOf(m.Codon(chunks[i])); ok && !literal[i] && op == m.OpStop {
			return start, i
		}
	}

	return start, len(chunks)
}

// Nonsense replaces one codon with TAA so execution ends there.
func Nonsense(rng Rand, genome string, position int) (m.MutationResult, error) {
	return nonsense.apply(rng, genome, position)
}
