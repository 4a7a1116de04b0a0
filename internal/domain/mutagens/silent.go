package mutagens

import (
	"fmt"

	"helix.dev/pkg/helix/internal/domain/codons"
	m "helix.dev/pkg/helix/internal/model"
)

var silent = substitution{
	kind:  m.MutationSilent,
	label: "synonymous",
	none:  ErrNoSynonymous,
	alternatives: func(chunks []string, _ []bool, i int) []m.Codon {
		return codons.Synonyms(m.Codon(chunks[i]))
	},
	describe: func(position int, from, to m.Codon) string {
		return fmt.Sprintf("Silent mutation at codon %d: %s → %s (%s unchanged)",
			position, from, to, opcodeName(from))
	},
}

// Silent replaces one codon with a synonym, so the opcode it encodes is
// unchanged. A codon in a literal slot changes value but not meaning as an
// instruction.
func Silent(rng Rand, genome string, position int) (m.MutationResult, error) {
	return silent.apply(rng, genome, position)
}
