package adapter

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/gogpu/gg"

	m "helix.dev/pkg/helix/internal/model"
)

const (
	// DefaultCanvasSize is the width and height used when none is configured.
	DefaultCanvasSize = 400

	defaultLineWidth = 2
	maxNoisePoints   = 2048
)

// RasterRenderer draws onto a software gg context. The origin sits at the
// canvas centre so genomes draw around the middle of the image.
type RasterRenderer struct {
	dc      *gg.Context
	tracker transformTracker
	color   color.Color
	colors  []color.Color
}

// NewRasterRenderer creates a width x height RasterRenderer.
func NewRasterRenderer(width, height int) *RasterRenderer {
	if width <= 0 {
		width = DefaultCanvasSize
	}

	if height <= 0 {
		height = DefaultCanvasSize
	}

	r := &RasterRenderer{
		dc:    gg.NewContext(width, height),
		color: gg.Black.Color(),
	}
	r.Clear()

	return r
}

// Close releases the underlying context.
func (r *RasterRenderer) Close() error {
	return r.dc.Close()
}

// Clear implements Renderer. It paints the canvas white and resets the
// transform to the centred origin.
func (r *RasterRenderer) Clear() {
	r.dc.Identity()
	r.dc.ClearWithColor(gg.White)
	r.dc.Translate(float64(r.dc.Width())/2, float64(r.dc.Height())/2)
	r.dc.SetLineWidth(defaultLineWidth)
	r.color = gg.Black.Color()
	r.colors = nil
	r.dc.SetColor(r.color)
	r.tracker = newTransformTracker()
}

// Circle implements Renderer.
func (r *RasterRenderer) Circle(radius float64) {
	r.dc.DrawCircle(0, 0, math.Abs(radius))
	r.fill("circle")
}

// Rect implements Renderer. The rectangle is centred on the origin.
func (r *RasterRenderer) Rect(width, height float64) {
	width, height = math.Abs(width), math.Abs(height)
	r.dc.DrawRectangle(-width/2, -height/2, width, height)
	r.fill("rect")
}

// Line implements Renderer. The line runs along the local x axis.
func (r *RasterRenderer) Line(length float64) {
	r.dc.DrawLine(0, 0, length, 0)
	r.stroke("line")
}

// Triangle implements Renderer with an equilateral triangle centred on the origin.
func (r *RasterRenderer) Triangle(size float64) {
	size = math.Abs(size)
	h := size * math.Sqrt(3) / 2

	r.dc.MoveTo(0, -2*h/3)
	r.dc.LineTo(size/2, h/3)
	r.dc.LineTo(-size/2, h/3)
	r.dc.ClosePath()
	r.fill("triangle")
}

// Ellipse implements Renderer.
func (r *RasterRenderer) Ellipse(rx, ry float64) {
	r.dc.DrawEllipse(0, 0, math.Abs(rx), math.Abs(ry))
	r.fill("ellipse")
}

// Noise implements Renderer: intensity dots scattered within a radius of
// intensity around the origin, placed by a PCG source seeded with seed.
func (r *RasterRenderer) Noise(seed int64, intensity float64) {
	count := int(math.Min(math.Abs(intensity), maxNoisePoints))
	if count == 0 {
		return
	}

	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
	radius := math.Abs(intensity)

	for range count {
		angle := rng.Float64() * 2 * math.Pi
		dist := rng.Float64() * radius
		r.dc.DrawPoint(math.Cos(angle)*dist, math.Sin(angle)*dist, 1)
	}

	r.fill("noise")
}

// Translate implements Renderer.
func (r *RasterRenderer) Translate(dx, dy float64) {
	r.dc.Translate(dx, dy)
	r.tracker.translate(dx, dy)
}

// Rotate implements Renderer.
func (r *RasterRenderer) Rotate(degrees float64) {
	r.dc.Rotate(degrees * math.Pi / 180)
	r.tracker.rotate(degrees)
}

// Scale implements Renderer.
func (r *RasterRenderer) Scale(factor float64) {
	r.dc.Scale(factor, factor)
	r.tracker.scale(factor)
}

// SetColor implements Renderer. Saturation and lightness are percentages.
func (r *RasterRenderer) SetColor(h, s, l float64) {
	r.color = gg.HSL(h, clampUnit(s/100), clampUnit(l/100)).Color()
	r.dc.SetColor(r.color)
}

// Save implements StateRenderer.
func (r *RasterRenderer) Save() {
	r.dc.Push()
	r.colors = append(r.colors, r.color)
	r.tracker.save()
}

// Restore implements StateRenderer.
func (r *RasterRenderer) Restore() {
	if !r.tracker.restore() {
		return
	}

	r.dc.Pop()
	r.color = r.colors[len(r.colors)-1]
	r.colors = r.colors[:len(r.colors)-1]
	r.dc.SetColor(r.color)
}

// CurrentTransform implements Renderer.
func (r *RasterRenderer) CurrentTransform() m.Transform {
	return r.tracker.current
}

// PNG encodes the canvas as PNG.
func (r *RasterRenderer) PNG() ([]byte, error) {
	var buf bytes.Buffer

	if err := r.dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}

	return buf.Bytes(), nil
}

// DataURL implements Renderer.
func (r *RasterRenderer) DataURL() (string, error) {
	data, err := r.PNG()
	if err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}

func (r *RasterRenderer) fill(shape string) {
	if err := r.dc.Fill(); err != nil {
		slog.Debug("fill failed", "shape", shape, "error", err)
	}
}

func (r *RasterRenderer) stroke(shape string) {
	if err := r.dc.Stroke(); err != nil {
		slog.Debug("stroke failed", "shape", shape, "error", err)
	}
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
