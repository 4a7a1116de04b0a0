package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helix.dev/pkg/helix/internal/adapter"
	adaptermocks "helix.dev/pkg/helix/internal/adapter/mocks"
	m "helix.dev/pkg/helix/internal/model"
)

func runGenome(t *testing.T, genome string, opts ...VMOption) ([]m.VMState, *adapter.RecordingRenderer, *VM) {
	t.Helper()

	renderer := adapter.NewRecordingRenderer()
	vm := NewVM(renderer, opts...)
	trace := vm.Run(NewLexer().Tokenize(genome))

	return trace, renderer, vm
}

func TestVM_Run_PushCircle(t *testing.T) {
	renderer := adaptermocks.NewMockRenderer(t)
	renderer.On("Clear").Return().Once()
	renderer.On("Circle", 21.0).Return().Once()

	trace := NewVM(renderer).Run(NewLexer().Tokenize("ATG GAA CCC GGA TAA"))

	require.Len(t, trace, 4)
	assert.Equal(t, []float64{21}, trace[1].Stack)
	assert.Empty(t, trace[2].Stack)
	assert.Equal(t, 3, trace[2].InstructionPointer)
	assert.Equal(t, 4, trace[3].InstructionCount)
}

func TestVM_Run_EmptyBody(t *testing.T) {
	trace, renderer, vm := runGenome(t, "ATG TAA")

	assert.Len(t, trace, 2)
	assert.Empty(t, renderer.DrawCalls())
	assert.Equal(t, m.HaltStop, vm.HaltReason())
}

func TestVM_Run_Arithmetic(t *testing.T) {
	tests := []struct {
		name   string
		genome string
		want   []float64
	}{
		{"add", "ATG GAA AAG GAA AAC CTG TAA", []float64{3}},
		{"sub is second minus top", "ATG GAA AAG GAA AAC CTT TAA", []float64{1}},
		{"mul", "ATG GAA AAG GAA AAT CAG TAA", []float64{6}},
		{"div", "ATG GAA ACA GAA AAG CAT TAA", []float64{2}},
		{"div by zero", "ATG GAA AAG GAA AAA CAT TAA", []float64{0}},
		{"eq true", "ATG GAA AAG GAA AAG CAC TAA", []float64{1}},
		{"eq false", "ATG GAA AAG GAA AAC CAC TAA", []float64{0}},
		{"lt true", "ATG GAA AAC GAA AAG CTC TAA", []float64{1}},
		{"lt false", "ATG GAA AAG GAA AAC CTC TAA", []float64{0}},
		{"dup", "ATG GAA AAG ATA TAA", []float64{2, 2}},
		{"pop", "ATG GAA AAG GAA AAC TAC TAA", []float64{2}},
		{"swap", "ATG GAA AAG GAA AAC TGG TAA", []float64{1, 2}},
		{"underflow add", "ATG CTG TAA", []float64{0}},
		{"underflow dup", "ATG ATA TAA", []float64{0, 0}},
		{"underflow pop", "ATG TAC TAA", []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trace, _, _ := runGenome(t, tt.genome)
			require.NotEmpty(t, trace)

			last := trace[len(trace)-1]
			assert.Equal(t, tt.want, last.Stack)
		})
	}
}

func TestVM_Run_DrawingArguments(t *testing.T) {
	renderer := adaptermocks.NewMockRenderer(t)
	renderer.On("Clear").Return().Once()
	renderer.On("Rect", 1.0, 2.0).Return().Once()
	renderer.On("Ellipse", 3.0, 1.0).Return().Once()
	renderer.On("Translate", 2.0, 3.0).Return().Once()
	renderer.On("Rotate", 8.0).Return().Once()
	renderer.On("Scale", 2.0).Return().Once()
	renderer.On("SetColor", 63.0, 8.0, 32.0).Return().Once()
	renderer.On("Line", 21.0).Return().Once()
	renderer.On("Triangle", 0.0).Return().Once()

	genome := `ATG
GAA AAC GAA AAG CCA ; rect 1 2
GAA AAT GAA AAC GTA ; ellipse 3 1
GAA AAG GAA AAT ACA ; translate 2 3
GAA AGA AGA         ; rotate 8
GAA AAG CGA         ; scale 2
GAA TTT GAA AGA GAA GAA TTA ; color 63 8 32
GAA CCC AAA         ; line 21
GCA                 ; triangle with empty stack
TAA`

	trace := NewVM(renderer).Run(NewLexer().Tokenize(genome))
	require.NotEmpty(t, trace)

	last := trace[len(trace)-1]
	assert.Equal(t, m.Point{X: 2, Y: 3}, last.Position)
	assert.Equal(t, 8.0, last.Rotation)
	assert.Equal(t, 2.0, last.Scale)
	assert.Equal(t, m.HSL{H: 63, S: 8, L: 32}, last.Color)
}

func TestVM_Run_Loop(t *testing.T) {
	// n=2 (AAG), count=3 (AAT): PUSH 21 + CIRCLE three times.
	trace, renderer, vm := runGenome(t, "ATG GAA AAG GAA AAT CAA GAA CCC GGA TAA")

	draws := renderer.DrawCalls()
	require.Len(t, draws, 3)

	for _, call := range draws {
		assert.Equal(t, m.RenderCall{Method: "circle", Args: []float64{21}}, call)
	}

	assert.Len(t, trace, 11)
	assert.Equal(t, 11, trace[len(trace)-1].InstructionCount)
	assert.Equal(t, m.HaltStop, vm.HaltReason())
}

func TestVM_Run_LoopZeroCountSkipsBody(t *testing.T) {
	trace, renderer, _ := runGenome(t, "ATG GAA AAG GAA AAA CAA GAA CCC GGA TAA")

	assert.Empty(t, renderer.DrawCalls())
	// START, PUSH, PUSH, LOOP, STOP.
	assert.Len(t, trace, 5)
}

func TestVM_Run_NestedLoops(t *testing.T) {
	genome := "ATG GAA ACA GAA TTT CAA GAA AAC GAA TTT CAA CTA TAA"

	trace, _, vm := runGenome(t, genome)
	assert.Len(t, trace, 4+63*66+1)
	assert.Equal(t, m.HaltStop, vm.HaltReason())
}

func TestVM_Run_InstructionCapTruncates(t *testing.T) {
	genome := "ATG GAA ACA GAA TTT CAA GAA AAC GAA TTT CAA CTA TAA"

	trace, _, vm := runGenome(t, genome, WithMaxInstructions(1000))
	assert.Len(t, trace, 1000)
	assert.Equal(t, 1000, trace[len(trace)-1].InstructionCount)
	assert.Equal(t, m.HaltLimit, vm.HaltReason())
}

func TestVM_Run_DefaultCapBoundsRunawayLoops(t *testing.T) {
	// Three nested 63x loops would run ~250k NOPs without the cap.
	genome := "ATG GAA ACA GAA TTT CAA GAA ACA GAA TTT CAA GAA AAC GAA TTT CAA CTA TAA"

	trace, _, vm := runGenome(t, genome)
	assert.Len(t, trace, DefaultMaxInstructions)
	assert.Equal(t, m.HaltLimit, vm.HaltReason())
}

func TestVM_Run_SaveRestoreState(t *testing.T) {
	trace, renderer, _ := runGenome(t, "ATG TCA GAA AAG GAA AAT ACA TCG TAA")
	require.Len(t, trace, 7)

	translated := trace[4]
	assert.Equal(t, m.Point{X: 2, Y: 3}, translated.Position)
	assert.Len(t, translated.StateStack, 1)

	restored := trace[5]
	assert.Equal(t, m.Point{}, restored.Position)
	assert.Empty(t, restored.StateStack)
	assert.Equal(t, m.Transform{Scale: 1}, renderer.CurrentTransform())

	methods := make([]string, 0)
	for _, call := range renderer.Calls() {
		methods = append(methods, call.Method)
	}

	assert.Equal(t, []string{"clear", "save", "translate", "restore"}, methods)
}

func TestVM_Run_RestoreOnEmptyStackIsNoop(t *testing.T) {
	trace, _, _ := runGenome(t, "ATG TCG TAA")

	require.Len(t, trace, 3)
	assert.Equal(t, m.Point{}, trace[1].Position)
}

func TestVM_Run_StopsAtFirstStop(t *testing.T) {
	trace, renderer, _ := runGenome(t, "ATG TAA GAA CCC GGA TAA")

	assert.Len(t, trace, 2)
	assert.Empty(t, renderer.DrawCalls())
}

func TestVM_Run_WithoutStartOrStop(t *testing.T) {
	trace, renderer, vm := runGenome(t, "GAA CCC GGA")

	assert.Len(t, trace, 2)
	assert.Len(t, renderer.DrawCalls(), 1)
	assert.Equal(t, m.HaltEnd, vm.HaltReason())
}

func TestVM_Run_SnapshotsDoNotAlias(t *testing.T) {
	trace, _, _ := runGenome(t, "ATG GAA AAG ATA TCA TAA")
	require.Len(t, trace, 5)

	trace[2].Stack[0] = 99
	trace[3].StateStack = append(trace[3].StateStack, m.TransformState{})

	assert.Equal(t, []float64{2, 2}, trace[3].Stack)
	assert.Equal(t, []float64{2, 2}, trace[4].Stack)
	assert.Len(t, trace[4].StateStack, 1)
}

func TestVM_Run_RecordsSeed(t *testing.T) {
	trace, _, _ := runGenome(t, "ATG TAA", WithSeed(42))

	for _, state := range trace {
		assert.Equal(t, int64(42), state.Seed)
	}
}

func TestVM_Run_IsRepeatable(t *testing.T) {
	vm := NewVM(nil)
	tokens := NewLexer().Tokenize("ATG GAA AAG GAA AAT CAA GAA CCC GGA TAA")

	first := vm.Run(tokens)
	second := vm.Run(tokens)

	assert.Equal(t, first, second)
}

func TestSanitizeNumber(t *testing.T) {
	assert.Equal(t, 0.0, sanitizeNumber(math.NaN()))
	assert.Equal(t, 0.0, sanitizeNumber(math.Inf(1)))
	assert.Equal(t, 0.0, sanitizeNumber(math.Inf(-1)))
	assert.Equal(t, 3.5, sanitizeNumber(3.5))
}
