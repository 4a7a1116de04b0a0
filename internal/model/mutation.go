package model

// MutationType represents the category of mutation.
type MutationType string

const (
	// MutationSilent swaps a codon for a synonym of the same opcode.
	MutationSilent MutationType = "silent"
	// MutationMissense swaps a codon for one of a different, non-STOP opcode.
	MutationMissense MutationType = "missense"
	// MutationNonsense replaces a codon with a STOP codon.
	MutationNonsense MutationType = "nonsense"
	// MutationPoint replaces a single base.
	MutationPoint MutationType = "point"
	// MutationInsertion inserts random bases.
	MutationInsertion MutationType = "insertion"
	// MutationDeletion removes bases.
	MutationDeletion MutationType = "deletion"
	// MutationFrameshift inserts or deletes one or two bases.
	MutationFrameshift MutationType = "frameshift"
)

// MutationTypes lists every supported mutation type.
func MutationTypes() []MutationType {
	return []MutationType{
		MutationSilent,
		MutationMissense,
		MutationNonsense,
		MutationPoint,
		MutationInsertion,
		MutationDeletion,
		MutationFrameshift,
	}
}

// MutationResult describes a single applied mutation.
type MutationResult struct {
	Original    string       `json:"original" yaml:"original"`
	Mutated     string       `json:"mutated" yaml:"mutated"`
	Type        MutationType `json:"type" yaml:"type"`
	Position    int          `json:"position" yaml:"position"`
	Description string       `json:"description" yaml:"description"`
}

// Difference is one codon position where two genomes disagree. A side that
// has no codon at Position is the empty string.
type Difference struct {
	Position int    `json:"position" yaml:"position"`
	Original string `json:"original" yaml:"original"`
	Mutated  string `json:"mutated" yaml:"mutated"`
}
