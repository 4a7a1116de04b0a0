package mutagens

import (
	"fmt"

	m "helix.dev/pkg/helix/internal/model"
)

// substitution is a codon-level mutation: pick a codon that has at least one
// alternative, then swap it for a uniformly chosen alternative.
type substitution struct {
	kind m.MutationType
	// label names the alternatives in position-specific errors, e.g. "synonymous".
	label string
	// none is returned when no codon anywhere is eligible.
	none error
	// alternatives lists what the codon at i may become; empty means ineligible.
	alternatives func(chunks []string, literal []bool, i int) []m.Codon
	describe     func(position int, from, to m.Codon) string
}

func (s substitution) apply(rng Rand, text string, position int) (m.MutationResult, error) {
	chunks := parseCodons(text)
	literal := literalPositions(chunks)

	if position == RandomPosition {
		candidates := make([]int, 0, len(chunks))

		for i := range chunks {
			if len(s.alternatives(chunks, literal, i)) > 0 {
				candidates = append(candidates, i)
			}
		}

		if len(candidates) == 0 {
			return m.MutationResult{}, s.none
		}

		position = candidates[rng.IntN(len(candidates))]
	} else if err := checkCodonPosition(position, len(chunks)); err != nil {
		return m.MutationResult{}, err
	}

	alternatives := s.alternatives(chunks, literal, position)
	if len(alternatives) == 0 {
		return m.MutationResult{}, fmt.Errorf("no %s codon for %s at position %d: %w",
			s.label, chunks[position], position, ErrNoAlternative)
	}

	from := m.Codon(chunks[position])
	to := alternatives[rng.IntN(len(alternatives))]

	original := render(joinBases(chunks))
	chunks[position] = string(to)

	return m.MutationResult{
		Original:    original,
		Mutated:     render(joinBases(chunks)),
		Type:        s.kind,
		Position:    position,
		Description: s.describe(position, from, to),
	}, nil
}

func joinBases(chunks []string) string {
	n := 0
	for _, c := range chunks {
		n += len(c)
	}

	out := make([]byte, 0, n)
	for _, c := range chunks {
		out = append(out, c...)
	}

	return string(out)
}
