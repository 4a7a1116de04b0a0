package mutagens

import (
	"fmt"

	m "helix.dev/pkg/helix/internal/model"
)

// Frameshift inserts or deletes one or two bases at position, which always
// knocks the downstream codons out of frame.
func Frameshift(rng Rand, genome string, position int) (m.MutationResult, error) {
	length := 1 + rng.IntN(2)
	insert := rng.IntN(2) == 0

	var (
		result m.MutationResult
		err    error
		shift  = length
	)

	if insert {
		result, err = Insertion(rng, genome, position, length)
	} else {
		shift = -length
		result, err = Deletion(rng, genome, position, length)
	}

	if err != nil {
		return m.MutationResult{}, err
	}

	result.Type = m.MutationFrameshift
	result.Description = fmt.Sprintf("Frameshift (%+d): %s", shift, result.Description)

	return result, nil
}
