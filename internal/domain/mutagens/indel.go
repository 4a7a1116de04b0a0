package mutagens

import (
	"fmt"

	"helix.dev/pkg/helix/internal/domain/codons"
	m "helix.dev/pkg/helix/internal/model"
)

// Insertion inserts length random bases before base position. position may
// equal the genome length to append.
func Insertion(rng Rand, genome string, position, length int) (m.MutationResult, error) {
	if length < 1 {
		return m.MutationResult{}, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}

	bases := codons.Clean(genome)

	if position == RandomPosition {
		position = rng.IntN(len(bases) + 1)
	} else if position < 0 || position > len(bases) {
		return m.MutationResult{}, fmt.Errorf("%w: base %d (genome has %d bases)",
			ErrPositionOutOfRange, position, len(bases))
	}

	inserted := make([]byte, length)
	for i := range inserted {
		inserted[i] = randomBase(rng)
	}

	mutated := bases[:position] + string(inserted) + bases[position:]

	return m.MutationResult{
		Original:    render(bases),
		Mutated:     render(mutated),
		Type:        m.MutationInsertion,
		Position:    position,
		Description: fmt.Sprintf("Inserted %d base(s) %s at base %d", length, inserted, position),
	}, nil
}

// Deletion removes length bases starting at base position.
func Deletion(rng Rand, genome string, position, length int) (m.MutationResult, error) {
	if length < 1 {
		return m.MutationResult{}, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}

	bases := codons.Clean(genome)

	if position == RandomPosition {
		if length > len(bases) {
			return m.MutationResult{}, fmt.Errorf("%w: %d base(s) from a %d-base genome",
				ErrDeletionWindow, length, len(bases))
		}

		position = rng.IntN(len(bases) - length + 1)
	} else {
		if position < 0 || position >= len(bases) {
			return m.MutationResult{}, fmt.Errorf("%w: base %d (genome has %d bases)",
				ErrPositionOutOfRange, position, len(bases))
		}

		if position+length > len(bases) {
			return m.MutationResult{}, fmt.Errorf("%w: %d base(s) at %d from a %d-base genome",
				ErrDeletionWindow, length, position, len(bases))
		}
	}

	removed := bases[position : position+length]
	mutated := bases[:position] + bases[position+length:]

	return m.MutationResult{
		Original:    render(bases),
		Mutated:     render(mutated),
		Type:        m.MutationDeletion,
		Position:    position,
		Description: fmt.Sprintf("Deleted %d base(s) %s at base %d", length, removed, position),
	}, nil
}
