package domain

import m "helix.dev/pkg/helix/internal/model"

// mutationScore tallies how many streamed mutations changed the drawing.
type mutationScore struct {
	visible int
	total   int
}

func (s *mutationScore) add(impact m.MutationImpact) {
	s.total++

	if impact.Visible() {
		s.visible++
	}
}

// Summary converts the tally for display.
func (s *mutationScore) Summary() m.MutationSummary {
	return m.MutationSummary{Visible: s.visible, Total: s.total}
}
