package adapter

import (
	"math"

	m "helix.dev/pkg/helix/internal/model"
)

// transformTracker follows the canvas transform implied by a sequence of
// translate/rotate/scale calls. Offsets are applied in the rotated, scaled
// frame.
type transformTracker struct {
	current m.Transform
	saved   []m.Transform
}

func newTransformTracker() transformTracker {
	return transformTracker{current: m.Transform{Scale: 1}}
}

func (t *transformTracker) translate(dx, dy float64) {
	rad := t.current.Rotation * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	t.current.X += (dx*cos - dy*sin) * t.current.Scale
	t.current.Y += (dx*sin + dy*cos) * t.current.Scale
}

func (t *transformTracker) rotate(degrees float64) {
	t.current.Rotation += degrees
}

func (t *transformTracker) scale(factor float64) {
	t.current.Scale *= factor
}

func (t *transformTracker) save() {
	t.saved = append(t.saved, t.current)
}

// restore reports false when nothing was saved.
func (t *transformTracker) restore() bool {
	if len(t.saved) == 0 {
		return false
	}

	t.current = t.saved[len(t.saved)-1]
	t.saved = t.saved[:len(t.saved)-1]

	return true
}
