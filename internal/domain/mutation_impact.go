package domain

import (
	"slices"

	"helix.dev/pkg/helix/internal/adapter"
	m "helix.dev/pkg/helix/internal/model"
)

// mutationImpact compares the simulated runs of a genome before and after a
// mutation.
func mutationImpact(result m.MutationResult, differences []m.Difference, original, mutated m.Execution) m.MutationImpact {
	return m.MutationImpact{
		Mutation:             result,
		Differences:          differences,
		OriginalInstructions: original.Instructions(),
		MutatedInstructions:  mutated.Instructions(),
		OriginalHalt:         original.Halt,
		MutatedHalt:          mutated.Halt,
		ChangedDrawCalls:     changedDrawCalls(original.Calls, mutated.Calls),
		MutatedDiagnostics:   mutated.Diagnostics,
	}
}

// shape is a draw call together with the transform and colour in effect
// when it was made.
type shape struct {
	call      m.RenderCall
	transform m.Transform
	color     m.HSL
}

func (s shape) equal(o shape) bool {
	return s.call.Method == o.call.Method &&
		slices.Equal(s.call.Args, o.call.Args) &&
		s.transform == o.transform &&
		s.color == o.color
}

// changedDrawCalls counts shapes that differ position by position, including
// shapes only one side drew.
func changedDrawCalls(original, mutated []m.RenderCall) int {
	a, b := drawnShapes(original), drawnShapes(mutated)

	changed := 0

	for i := range max(len(a), len(b)) {
		if i >= len(a) || i >= len(b) || !a[i].equal(b[i]) {
			changed++
		}
	}

	return changed
}

func drawnShapes(calls []m.RenderCall) []shape {
	surface := adapter.NewRecordingRenderer()

	var (
		shapes []shape
		color  m.HSL
		saved  []m.HSL
	)

	for _, call := range calls {
		switch {
		case adapter.IsDrawMethod(call.Method):
			shapes = append(shapes, shape{call: call, transform: surface.CurrentTransform(), color: color})
		case call.Method == "setColor" && len(call.Args) == 3:
			color = m.HSL{H: call.Args[0], S: call.Args[1], L: call.Args[2]}
		case call.Method == "save":
			saved = append(saved, color)
			surface.Save()
		case call.Method == "restore":
			if len(saved) > 0 {
				color = saved[len(saved)-1]
				saved = saved[:len(saved)-1]
			}

			surface.Restore()
		default:
			adapter.Replay(surface, call)
		}
	}

	return shapes
}
