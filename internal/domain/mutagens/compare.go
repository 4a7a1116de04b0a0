package mutagens

import m "helix.dev/pkg/helix/internal/model"

// Compare aligns two genomes codon by codon and lists every position that
// differs. A codon missing on one side is reported as an empty string.
func Compare(original, mutated string) []m.Difference {
	a, b := parseCodons(original), parseCodons(mutated)

	n := max(len(a), len(b))

	var diffs []m.Difference

	for i := range n {
		var left, right string
		if i < len(a) {
			left = a[i]
		}

		if i < len(b) {
			right = b[i]
		}

		if left != right {
			diffs = append(diffs, m.Difference{
				Position: i,
				Original: left,
				Mutated:  right,
			})
		}
	}

	return diffs
}
