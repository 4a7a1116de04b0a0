// Package mutagens implements the genome mutations: codon substitutions
// (silent, missense, nonsense) and base-level edits (point, insertion,
// deletion, frameshift). Every function is pure apart from the random source
// it is given.
package mutagens

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"helix.dev/pkg/helix/internal/domain/codons"
	m "helix.dev/pkg/helix/internal/model"
)

// RandomPosition asks a mutation to pick its own target uniformly among the
// eligible positions.
const RandomPosition = -1

// Rand is the randomness a mutation needs. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand returns the unseeded, goroutine-safe global source.
func DefaultRand() Rand {
	return globalRand{}
}

var (
	// ErrNoSynonymous is returned when no codon in the genome has a synonym.
	ErrNoSynonymous = errors.New("no synonymous mutations available")
	// ErrNoMissense is returned when no codon can change to another non-STOP opcode.
	ErrNoMissense = errors.New("no missense mutations available")
	// ErrNoNonsense is returned when no codon may be replaced with STOP.
	ErrNoNonsense = errors.New("no nonsense mutations available")
	// ErrNoAlternative is returned when an explicit position cannot take the mutation.
	ErrNoAlternative = errors.New("no eligible replacement")
	// ErrPositionOutOfRange is returned for explicit positions outside the genome.
	ErrPositionOutOfRange = errors.New("position out of range")
	// ErrDeletionWindow is returned when a deletion runs past the end of the genome.
	ErrDeletionWindow = errors.New("deletion exceeds genome length")
	// ErrInvalidLength is returned for non-positive insertion/deletion lengths.
	ErrInvalidLength = errors.New("length must be positive")
	// ErrEmptyGenome is returned when a base-level mutation has no bases to work on.
	ErrEmptyGenome = errors.New("genome has no bases")
)

// parseCodons cleans genome text and chunks it into codons, keeping a
// trailing partial codon so re-rendering never loses bases.
func parseCodons(text string) []string {
	return codons.Split(codons.Clean(text), true)
}

// render groups bases into space-separated codons.
func render(bases string) string {
	return codons.Join(codons.Split(bases, true))
}

// literalPositions marks the codons that are PUSH operands rather than
// instructions, reading the codons the way the lexer does.
func literalPositions(chunks []string) []bool {
	literal := make([]bool, len(chunks))
	expectLiteral := false

	for i, chunk := range chunks {
		if expectLiteral {
			literal[i] = true
			expectLiteral = false

			continue
		}

		op, ok := codons.OpcodeOf(m.Codon(chunk))
		expectLiteral = ok && op == m.OpPush
	}

	return literal
}

func opcodeName(codon m.Codon) string {
	op, ok := codons.OpcodeOf(codon)
	if !ok {
		return "unknown"
	}

	return op.String()
}

func checkCodonPosition(position, count int) error {
	if position < 0 || position >= count {
		return fmt.Errorf("%w: codon %d (genome has %d codons)", ErrPositionOutOfRange, position, count)
	}

	return nil
}

func randomBase(rng Rand) byte {
	return codons.Bases[rng.IntN(len(codons.Bases))]
}
