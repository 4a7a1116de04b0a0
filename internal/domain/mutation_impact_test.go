package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	m "helix.dev/pkg/helix/internal/model"
)

func calls(methods ...m.RenderCall) []m.RenderCall {
	return methods
}

func TestChangedDrawCalls(t *testing.T) {
	clearCall := m.RenderCall{Method: "clear"}
	circle := m.RenderCall{Method: "circle", Args: []float64{21}}
	bigCircle := m.RenderCall{Method: "circle", Args: []float64{32}}
	red := m.RenderCall{Method: "setColor", Args: []float64{0, 100, 50}}
	moved := m.RenderCall{Method: "translate", Args: []float64{2, 3}}

	tests := []struct {
		name     string
		original []m.RenderCall
		mutated  []m.RenderCall
		want     int
	}{
		{"identical", calls(clearCall, circle), calls(clearCall, circle), 0},
		{"non-drawing calls alone are invisible", calls(clearCall, red), calls(clearCall), 0},
		{"different argument", calls(clearCall, circle), calls(clearCall, bigCircle), 1},
		{"missing shape", calls(clearCall, circle, circle), calls(clearCall, circle), 1},
		{"everything truncated", calls(clearCall, circle, circle), calls(clearCall), 2},
		{"colour change", calls(clearCall, circle), calls(clearCall, red, circle), 1},
		{"transform change", calls(clearCall, circle), calls(clearCall, moved, circle), 1},
		{
			"restore brings colour back",
			calls(clearCall, m.RenderCall{Method: "save"}, red, m.RenderCall{Method: "restore"}, circle),
			calls(clearCall, circle),
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, changedDrawCalls(tt.original, tt.mutated))
		})
	}
}

func TestMutationImpact(t *testing.T) {
	original := m.Execution{
		Trace: []m.VMState{{InstructionCount: 1}, {InstructionCount: 4}},
		Halt:  m.HaltStop,
		Calls: calls(m.RenderCall{Method: "circle", Args: []float64{21}}),
	}
	mutated := m.Execution{
		Trace:       []m.VMState{{InstructionCount: 2}},
		Halt:        m.HaltEnd,
		Diagnostics: []m.Diagnostic{m.ParseError("broken", 0)},
	}
	result := m.MutationResult{Type: m.MutationNonsense}
	differences := []m.Difference{{Position: 1, Original: "GAA", Mutated: "TAA"}}

	impact := mutationImpact(result, differences, original, mutated)

	assert.Equal(t, result, impact.Mutation)
	assert.Equal(t, differences, impact.Differences)
	assert.Equal(t, 4, impact.OriginalInstructions)
	assert.Equal(t, 2, impact.MutatedInstructions)
	assert.Equal(t, m.HaltStop, impact.OriginalHalt)
	assert.Equal(t, m.HaltEnd, impact.MutatedHalt)
	assert.Equal(t, 1, impact.ChangedDrawCalls)
	assert.True(t, impact.Visible())
	assert.Len(t, impact.MutatedDiagnostics, 1)
}
