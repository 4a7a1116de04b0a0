// Package adapter contains the infrastructure the codon pipeline talks to:
// drawing surfaces, the genome filesystem and trace storage.
package adapter

import m "helix.dev/pkg/helix/internal/model"

// Renderer is the drawing surface the VM executes against. Lengths are in
// canvas units, angles in degrees, colours in HSL (hue in degrees,
// saturation and lightness in percent).
//
//nolint:interfacebloat // Mirrors the full drawing capability the VM may use.
type Renderer interface {
	Clear()
	Circle(radius float64)
	Rect(width, height float64)
	Line(length float64)
	Triangle(size float64)
	Ellipse(rx, ry float64)
	Noise(seed int64, intensity float64)
	Translate(dx, dy float64)
	Rotate(degrees float64)
	Scale(factor float64)
	SetColor(h, s, l float64)
	CurrentTransform() m.Transform
	DataURL() (string, error)
}

// StateRenderer is implemented by renderers that can save and restore their
// own transform, so SAVE_STATE/RESTORE_STATE keep them in sync with the VM.
type StateRenderer interface {
	Renderer
	Save()
	Restore()
}

// ImageRenderer is a Renderer that produces an encoded image.
type ImageRenderer interface {
	StateRenderer
	PNG() ([]byte, error)
	Close() error
}

// ImageRendererFactory builds a fresh ImageRenderer of the given size.
type ImageRendererFactory func(width, height int) ImageRenderer

// NewRasterImageRenderer is the default ImageRendererFactory.
func NewRasterImageRenderer(width, height int) ImageRenderer {
	return NewRasterRenderer(width, height)
}

// NopRenderer discards every call.
type NopRenderer struct{}

// NewNopRenderer returns a renderer that draws nothing.
func NewNopRenderer() *NopRenderer { return &NopRenderer{} }

func (NopRenderer) Clear() {}
func (NopRenderer) Circle(float64) {}
func (NopRenderer) Rect(float64, float64) {}
func (NopRenderer) Line(float64) {}
func (NopRenderer) Triangle(float64) {}
func (NopRenderer) Ellipse(float64, float64) {}
func (NopRenderer) Noise(int64, float64) {}
func (NopRenderer) Translate(float64, float64) {}
func (NopRenderer) Rotate(float64) {}
func (NopRenderer) Scale(float64) {}
func (NopRenderer) SetColor(float64, float64, float64) {}

// CurrentTransform always reports the identity transform.
func (NopRenderer) CurrentTransform() m.Transform { return m.Transform{Scale: 1} }

// DataURL returns an empty data URL.
func (NopRenderer) DataURL() (string, error) { return "data:,", nil }
