package mutagens

import (
	"fmt"
	"strings"

	"helix.dev/pkg/helix/internal/domain/codons"
	m "helix.dev/pkg/helix/internal/model"
)

// Point changes a single base to a different base. position is a base index
// into the cleaned genome.
func Point(rng Rand, genome string, position int) (m.MutationResult, error) {
	bases := codons.Clean(genome)
	if len(bases) == 0 {
		return m.MutationResult{}, ErrEmptyGenome
	}

	if position == RandomPosition {
		position = rng.IntN(len(bases))
	} else if position < 0 || position >= len(bases) {
		return m.MutationResult{}, fmt.Errorf("%w: base %d (genome has %d bases)",
			ErrPositionOutOfRange, position, len(bases))
	}

	from := bases[position]

	choices := make([]byte, 0, len(codons.Bases))
	for i := range len(codons.Bases) {
		if codons.Bases[i] != from {
			choices = append(choices, codons.Bases[i])
		}
	}

	to := choices[rng.IntN(len(choices))]

	var b strings.Builder

	b.Grow(len(bases))
	b.WriteString(bases[:position])
	b.WriteByte(to)
	b.WriteString(bases[position+1:])

	return m.MutationResult{
		Original:    render(bases),
		Mutated:     render(b.String()),
		Type:        m.MutationPoint,
		Position:    position,
		Description: fmt.Sprintf("Point mutation at base %d: %c → %c", position, from, to),
	}, nil
}
