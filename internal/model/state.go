package model

// Point is a position on the drawing surface.
type Point struct {
	X float64 `json:"x" yaml:"x" cbor:"x"`
	Y float64 `json:"y" yaml:"y" cbor:"y"`
}

// HSL is a colour in hue (degrees), saturation and lightness (percent).
type HSL struct {
	H float64 `json:"h" yaml:"h" cbor:"h"`
	S float64 `json:"s" yaml:"s" cbor:"s"`
	L float64 `json:"l" yaml:"l" cbor:"l"`
}

// TransformState is the drawing state owned by the VM during a run.
type TransformState struct {
	Position Point   `json:"position" yaml:"position" cbor:"position"`
	Rotation float64 `json:"rotation" yaml:"rotation" cbor:"rotation"`
	Scale    float64 `json:"scale" yaml:"scale" cbor:"scale"`
	Color    HSL     `json:"color" yaml:"color" cbor:"color"`
}

// DefaultTransformState is the state every run starts from.
func DefaultTransformState() TransformState {
	return TransformState{
		Scale: 1,
		Color: HSL{H: 0, S: 0, L: 0},
	}
}

// Transform is what a renderer reports as its current transform.
type Transform struct {
	X        float64 `json:"x" yaml:"x" cbor:"x"`
	Y        float64 `json:"y" yaml:"y" cbor:"y"`
	Rotation float64 `json:"rotation" yaml:"rotation" cbor:"rotation"`
	Scale    float64 `json:"scale" yaml:"scale" cbor:"scale"`
}

// VMState is a snapshot of the interpreter taken after one instruction.
type VMState struct {
	Position           Point            `json:"position" yaml:"position" cbor:"position"`
	Rotation           float64          `json:"rotation" yaml:"rotation" cbor:"rotation"`
	Scale              float64          `json:"scale" yaml:"scale" cbor:"scale"`
	Color              HSL              `json:"color" yaml:"color" cbor:"color"`
	Stack              []float64        `json:"stack" yaml:"stack" cbor:"stack"`
	InstructionPointer int              `json:"instructionPointer" yaml:"instructionPointer" cbor:"instructionPointer"`
	StateStack         []TransformState `json:"stateStack" yaml:"stateStack" cbor:"stateStack"`
	InstructionCount   int              `json:"instructionCount" yaml:"instructionCount" cbor:"instructionCount"`
	Seed               int64            `json:"seed" yaml:"seed" cbor:"seed"`
}

// HaltReason records why a run stopped.
type HaltReason string

const (
	// HaltStop means a STOP codon was executed.
	HaltStop HaltReason = "stop"
	// HaltEnd means the token stream ran out.
	HaltEnd HaltReason = "end"
	// HaltLimit means the instruction cap was reached.
	HaltLimit HaltReason = "limit"
)
