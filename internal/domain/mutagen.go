package domain

import (
	"context"
	"errors"
	"fmt"

	"helix.dev/pkg/helix/internal/domain/mutagens"
	m "helix.dev/pkg/helix/internal/model"
)

// ErrUnknownMutationType is returned when a mutation type name is not recognized.
var ErrUnknownMutationType = errors.New("unknown mutation type")

// Mutagen applies genome mutations. Positions are codon indices for the
// silent, missense and nonsense families and base indices for the rest;
// mutagens.RandomPosition lets the mutation pick.
type Mutagen interface {
	ApplySilentMutation(genome string, position int) (m.MutationResult, error)
	ApplyMissenseMutation(genome string, position int) (m.MutationResult, error)
	ApplyNonsenseMutation(genome string, position int) (m.MutationResult, error)
	ApplyPointMutation(genome string, position int) (m.MutationResult, error)
	ApplyInsertion(genome string, position, length int) (m.MutationResult, error)
	ApplyDeletion(genome string, position, length int) (m.MutationResult, error)
	ApplyFrameshiftMutation(genome string, position int) (m.MutationResult, error)
	GetMutationByType(mutationType m.MutationType, genome string) (m.MutationResult, error)
	Apply(mutationType m.MutationType, genome string, position, length int) (m.MutationResult, error)
	CompareGenomes(original, mutated string) []m.Difference
	StreamMutations(ctx context.Context, genome string, count int, mutationTypes ...m.MutationType) (<-chan m.MutationResult, <-chan error)
}

// MutagenOption configures NewMutagen.
type MutagenOption func(*mutagen)

// WithRand sets the random source. The source is used from one goroutine at
// a time per Mutagen call, but a Mutagen shared between goroutines needs a
// goroutine-safe source.
func WithRand(rng mutagens.Rand) MutagenOption {
	return func(mg *mutagen) {
		if rng != nil {
			mg.rng = rng
		}
	}
}

type mutagen struct {
	rng mutagens.Rand
}

// NewMutagen creates a new Mutagen instance.
func NewMutagen(opts ...MutagenOption) Mutagen {
	mg := &mutagen{rng: mutagens.DefaultRand()}

	for _, opt := range opts {
		opt(mg)
	}

	return mg
}

func (mg *mutagen) ApplySilentMutation(genome string, position int) (m.MutationResult, error) {
	return mutagens.Silent(mg.rng, genome, position)
}

func (mg *mutagen) ApplyMissenseMutation(genome string, position int) (m.MutationResult, error) {
	return mutagens.Missense(mg.rng, genome, position)
}

func (mg *mutagen) ApplyNonsenseMutation(genome string, position int) (m.MutationResult, error) {
	return mutagens.Nonsense(mg.rng, genome, position)
}

func (mg *mutagen) ApplyPointMutation(genome string, position int) (m.MutationResult, error) {
	return mutagens.Point(mg.rng, genome, position)
}

func (mg *mutagen) ApplyInsertion(genome string, position, length int) (m.MutationResult, error) {
	return mutagens.Insertion(mg.rng, genome, position, length)
}

func (mg *mutagen) ApplyDeletion(genome string, position, length int) (m.MutationResult, error) {
	return mutagens.Deletion(mg.rng, genome, position, length)
}

func (mg *mutagen) ApplyFrameshiftMutation(genome string, position int) (m.MutationResult, error) {
	return mutagens.Frameshift(mg.rng, genome, position)
}

func (mg *mutagen) CompareGenomes(original, mutated string) []m.Difference {
	return mutagens.Compare(original, mutated)
}

type mutationGenerator func(rng mutagens.Rand, genome string, position, length int) (m.MutationResult, error)

func positional(fn func(mutagens.Rand, string, int) (m.MutationResult, error)) mutationGenerator {
	return func(rng mutagens.Rand, genome string, position, _ int) (m.MutationResult, error) {
		return fn(rng, genome, position)
	}
}

var mutationGenerators = map[m.MutationType]mutationGenerator{
	m.MutationSilent:     positional(mutagens.Silent),
	m.MutationMissense:   positional(mutagens.Missense),
	m.MutationNonsense:   positional(mutagens.Nonsense),
	m.MutationPoint:      positional(mutagens.Point),
	m.MutationInsertion:  mutagens.Insertion,
	m.MutationDeletion:   mutagens.Deletion,
	m.MutationFrameshift: positional(mutagens.Frameshift),
}

// GetMutationByType applies one random mutation of the given type. Insertions
// and deletions use a single base.
func (mg *mutagen) GetMutationByType(mutationType m.MutationType, genome string) (m.MutationResult, error) {
	return mg.Apply(mutationType, genome, mutagens.RandomPosition, 1)
}

// Apply dispatches to the mutation named by mutationType. length is only
// used by insertions and deletions.
func (mg *mutagen) Apply(mutationType m.MutationType, genome string, position, length int) (m.MutationResult, error) {
	gen, ok := mutationGenerators[mutationType]
	if !ok {
		return m.MutationResult{}, fmt.Errorf("%w: %q", ErrUnknownMutationType, mutationType)
	}

	return gen(mg.rng, genome, position, length)
}

func resolveMutationTypes(mutationTypes []m.MutationType) ([]m.MutationType, error) {
	if len(mutationTypes) == 0 {
		return m.MutationTypes(), nil
	}

	for _, mutationType := range mutationTypes {
		if _, ok := mutationGenerators[mutationType]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMutationType, mutationType)
		}
	}

	return mutationTypes, nil
}

// StreamMutations emits count random mutations of genome, cycling through
// mutationTypes (all types when none are given). Types that cannot apply to
// the genome are skipped; the error channel only carries configuration errors
// and cancellation.
func (mg *mutagen) StreamMutations(ctx context.Context, genome string, count int, mutationTypes ...m.MutationType) (<-chan m.MutationResult, <-chan error) {
	mutationCh := make(chan m.MutationResult, max(count, 1))
	errCh := make(chan error, 1)

	go func() {
		defer close(mutationCh)
		defer close(errCh)

		resolved, err := resolveMutationTypes(mutationTypes)
		if err != nil {
			errCh <- err
			return
		}

		mg.streamMutations(ctx, genome, count, resolved, mutationCh, errCh)
	}()

	return mutationCh, errCh
}

func (mg *mutagen) streamMutations(ctx context.Context, genome string, count int, mutationTypes []m.MutationType, mutationCh chan<- m.MutationResult, errCh chan<- error) {
	for i := range count {
		result, err := mg.GetMutationByType(mutationTypes[i%len(mutationTypes)], genome)
		if err != nil {
			continue
		}

		select {
		case <-ctx.Done():
			errCh <- ctx.Err()
			return
		case mutationCh <- result:
		}
	}
}
