package adapter

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	m "helix.dev/pkg/helix/internal/model"
)

// drawMethods are the calls that put marks on the surface.
var drawMethods = map[string]bool{
	"circle":   true,
	"rect":     true,
	"line":     true,
	"triangle": true,
	"ellipse":  true,
	"noise":    true,
}

// IsDrawMethod reports whether a recorded method puts marks on the surface.
func IsDrawMethod(method string) bool {
	return drawMethods[method]
}

// Replay sends recorded calls to r. Calls with an unknown method or too few
// arguments are skipped.
//
//nolint:cyclop // One case per renderer method.
func Replay(r Renderer, calls ...m.RenderCall) {
	for _, call := range calls {
		a := call.Args

		switch {
		case call.Method == "clear":
			r.Clear()
		case call.Method == "circle" && len(a) >= 1:
			r.Circle(a[0])
		case call.Method == "rect" && len(a) >= 2:
			r.Rect(a[0], a[1])
		case call.Method == "line" && len(a) >= 1:
			r.Line(a[0])
		case call.Method == "triangle" && len(a) >= 1:
			r.Triangle(a[0])
		case call.Method == "ellipse" && len(a) >= 2:
			r.Ellipse(a[0], a[1])
		case call.Method == "noise" && len(a) >= 2:
			r.Noise(int64(a[0]), a[1])
		case call.Method == "translate" && len(a) >= 2:
			r.Translate(a[0], a[1])
		case call.Method == "rotate" && len(a) >= 1:
			r.Rotate(a[0])
		case call.Method == "scale" && len(a) >= 1:
			r.Scale(a[0])
		case call.Method == "setColor" && len(a) >= 3:
			r.SetColor(a[0], a[1], a[2])
		case call.Method == "save" || call.Method == "restore":
			if sr, ok := r.(StateRenderer); ok {
				if call.Method == "save" {
					sr.Save()
				} else {
					sr.Restore()
				}
			}
		}
	}
}

// RecordingRenderer keeps every call it receives and tracks the transform the
// calls imply. It is the surface used for dry runs and the trace stepper.
type RecordingRenderer struct {
	calls   []m.RenderCall
	tracker transformTracker
}

// NewRecordingRenderer creates an empty RecordingRenderer.
func NewRecordingRenderer() *RecordingRenderer {
	return &RecordingRenderer{tracker: newTransformTracker()}
}

func (r *RecordingRenderer) record(method string, args ...float64) {
	r.calls = append(r.calls, m.RenderCall{Method: method, Args: args})
}

// Calls returns a copy of every recorded call.
func (r *RecordingRenderer) Calls() []m.RenderCall {
	out := make([]m.RenderCall, len(r.calls))
	copy(out, r.calls)

	return out
}

// DrawCalls returns only the calls that draw shapes.
func (r *RecordingRenderer) DrawCalls() []m.RenderCall {
	var out []m.RenderCall

	for _, c := range r.calls {
		if drawMethods[c.Method] {
			out = append(out, c)
		}
	}

	return out
}

// Reset forgets all recorded calls and the transform.
func (r *RecordingRenderer) Reset() {
	r.calls = nil
	r.tracker = newTransformTracker()
}

// Clear implements Renderer.
func (r *RecordingRenderer) Clear() {
	r.record("clear")
}

// Circle implements Renderer.
func (r *RecordingRenderer) Circle(radius float64) {
	r.record("circle", radius)
}

// Rect implements Renderer.
func (r *RecordingRenderer) Rect(width, height float64) {
	r.record("rect", width, height)
}

// Line implements Renderer.
func (r *RecordingRenderer) Line(length float64) {
	r.record("line", length)
}

// Triangle implements Renderer.
func (r *RecordingRenderer) Triangle(size float64) {
	r.record("triangle", size)
}

// Ellipse implements Renderer.
func (r *RecordingRenderer) Ellipse(rx, ry float64) {
	r.record("ellipse", rx, ry)
}

// Noise implements Renderer.
func (r *RecordingRenderer) Noise(seed int64, intensity float64) {
	r.record("noise", float64(seed), intensity)
}

// Translate implements Renderer. The offset is applied in the rotated,
// scaled frame, as a canvas would.
func (r *RecordingRenderer) Translate(dx, dy float64) {
	r.record("translate", dx, dy)
	r.tracker.translate(dx, dy)
}

// Rotate implements Renderer.
func (r *RecordingRenderer) Rotate(degrees float64) {
	r.record("rotate", degrees)
	r.tracker.rotate(degrees)
}

// Scale implements Renderer.
func (r *RecordingRenderer) Scale(factor float64) {
	r.record("scale", factor)
	r.tracker.scale(factor)
}

// SetColor implements Renderer.
func (r *RecordingRenderer) SetColor(h, s, l float64) {
	r.record("setColor", h, s, l)
}

// Save implements StateRenderer.
func (r *RecordingRenderer) Save() {
	r.record("save")
	r.tracker.save()
}

// Restore implements StateRenderer.
func (r *RecordingRenderer) Restore() {
	r.record("restore")
	r.tracker.restore()
}

// CurrentTransform implements Renderer.
func (r *RecordingRenderer) CurrentTransform() m.Transform {
	return r.tracker.current
}

// DataURL encodes the recorded calls as a JSON data URL.
func (r *RecordingRenderer) DataURL() (string, error) {
	payload, err := json.Marshal(r.calls)
	if err != nil {
		return "", fmt.Errorf("failed to encode render calls: %w", err)
	}

	return "data:application/json;base64," + base64.StdEncoding.EncodeToString(payload), nil
}
