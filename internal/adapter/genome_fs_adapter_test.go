package adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "helix.dev/pkg/helix/internal/model"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()

	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}

	return root
}

func TestLocalGenomeFSAdapter_Expand(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.genome":             "ATG TAA",
		"notes.txt":            "ignored",
		"nested/b.dna":         "ATG TAA",
		"nested/deep/c.GENOME": "ATG TAA",
		".hidden/d.genome":     "ATG TAA",
	})

	fsAdapter := NewLocalGenomeFSAdapter()
	ctx := context.Background()

	flat, err := fsAdapter.Expand(ctx, []m.Path{m.Path(root)})
	require.NoError(t, err)
	assert.Equal(t, []m.Path{m.Path(filepath.Join(root, "a.genome"))}, flat)

	recursive, err := fsAdapter.Expand(ctx, []m.Path{m.Path(root + "/...")})
	require.NoError(t, err)
	assert.Equal(t, []m.Path{
		m.Path(filepath.Join(root, "a.genome")),
		m.Path(filepath.Join(root, "nested", "b.dna")),
		m.Path(filepath.Join(root, "nested", "deep", "c.GENOME")),
	}, recursive)

	explicit, err := fsAdapter.Expand(ctx, []m.Path{
		m.Path(filepath.Join(root, "notes.txt")),
		m.Path(filepath.Join(root, "notes.txt")),
	})
	require.NoError(t, err)
	assert.Len(t, explicit, 1, "explicit files are kept once whatever their extension")
}

func TestLocalGenomeFSAdapter_Expand_Errors(t *testing.T) {
	fsAdapter := NewLocalGenomeFSAdapter()
	ctx := context.Background()

	_, err := fsAdapter.Expand(ctx, []m.Path{"does-not-exist.genome"})
	require.Error(t, err)

	empty := writeTree(t, map[string]string{"readme.md": "x"})
	_, err = fsAdapter.Expand(ctx, []m.Path{m.Path(empty)})
	require.ErrorIs(t, err, ErrNoGenomes)
}

func TestLocalGenomeFSAdapter_ReadGenome(t *testing.T) {
	root := writeTree(t, map[string]string{"circle.genome": "ATG GAA CCC GGA TAA\n"})
	fsAdapter := NewLocalGenomeFSAdapter()
	path := m.Path(filepath.Join(root, "circle.genome"))

	genome, err := fsAdapter.ReadGenome(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "circle", genome.Name)
	assert.Equal(t, path, genome.Path)
	assert.Equal(t, "ATG GAA CCC GGA TAA\n", genome.Text)

	hash, err := fsAdapter.HashFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, hash, genome.Hash)
	assert.Len(t, hash, 64)
}

func TestLocalGenomeFSAdapter_WriteFileCreatesParents(t *testing.T) {
	root := t.TempDir()
	path := m.Path(filepath.Join(root, "out", "nested", "x.json"))

	require.NoError(t, NewLocalGenomeFSAdapter().WriteFile(context.Background(), path, []byte("{}")))

	content, err := os.ReadFile(string(path))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(content))
}

func TestLocalGenomeFSAdapter_HonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLocalGenomeFSAdapter().ReadFile(ctx, "anything")
	require.ErrorIs(t, err, context.Canceled)
}

func TestGenomeName(t *testing.T) {
	assert.Equal(t, "spiral", GenomeName("examples/spiral.genome"))
	assert.True(t, IsGenomeFile("x.DNA"))
	assert.False(t, IsGenomeFile("x.go"))
}
