package adapter

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "helix.dev/pkg/helix/internal/model"
)

func TestRasterRenderer_PNG(t *testing.T) {
	r := NewRasterRenderer(64, 32)
	t.Cleanup(func() { _ = r.Close() })

	r.SetColor(0, 100, 50)
	r.Circle(10)
	r.Rect(4, 4)
	r.Line(12)
	r.Triangle(6)
	r.Ellipse(8, 3)
	r.Noise(42, 16)

	data, err := r.PNG()
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
}

func TestRasterRenderer_DefaultSize(t *testing.T) {
	r := NewRasterRenderer(0, -1)
	t.Cleanup(func() { _ = r.Close() })

	data, err := r.PNG()
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, DefaultCanvasSize, cfg.Width)
	assert.Equal(t, DefaultCanvasSize, cfg.Height)
}

func TestRasterRenderer_DataURL(t *testing.T) {
	r := NewRasterRenderer(16, 16)
	t.Cleanup(func() { _ = r.Close() })

	url, err := r.DataURL()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
}

func TestRasterRenderer_TransformAndStateStack(t *testing.T) {
	r := NewRasterRenderer(16, 16)
	t.Cleanup(func() { _ = r.Close() })

	r.Save()
	r.Translate(2, 3)
	r.Scale(3)
	assert.Equal(t, m.Transform{X: 2, Y: 3, Scale: 3}, r.CurrentTransform())

	r.Restore()
	assert.Equal(t, m.Transform{Scale: 1}, r.CurrentTransform())

	// Unbalanced restore is ignored.
	r.Restore()
	assert.Equal(t, m.Transform{Scale: 1}, r.CurrentTransform())

	r.Translate(1, 1)
	r.Clear()
	assert.Equal(t, m.Transform{Scale: 1}, r.CurrentTransform())
}
