package adapter

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	m "helix.dev/pkg/helix/internal/model"
)

// GenomeExtensions are the file extensions recognised when expanding
// directories.
var GenomeExtensions = []string{".genome", ".dna"}

const recursiveSuffix = "/..."

// ErrNoGenomes is returned when path expansion finds nothing to run.
var ErrNoGenomes = errors.New("no genome files found")

// GenomeFSAdapter hides filesystem access from the domain layer.
type GenomeFSAdapter interface {
	// Expand resolves files, directories and Go-style "./..." patterns into a
	// sorted, de-duplicated list of genome files.
	Expand(ctx context.Context, paths []m.Path) ([]m.Path, error)
	// ReadGenome loads and fingerprints a genome file.
	ReadGenome(ctx context.Context, path m.Path) (m.Genome, error)
	// HashFile returns the SHA-256 of the file at path.
	HashFile(ctx context.Context, path m.Path) (string, error)
	// WriteFile writes content, creating parent directories.
	WriteFile(ctx context.Context, path m.Path, content []byte) error
	// ReadFile loads any file.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)
}

// LocalGenomeFSAdapter is the os-backed GenomeFSAdapter.
type LocalGenomeFSAdapter struct{}

// NewLocalGenomeFSAdapter constructs a LocalGenomeFSAdapter.
func NewLocalGenomeFSAdapter() *LocalGenomeFSAdapter {
	return &LocalGenomeFSAdapter{}
}

// Expand implements GenomeFSAdapter. Explicit files are kept whatever their
// extension; directories contribute only genome files, recursing for "/...".
func (a *LocalGenomeFSAdapter) Expand(ctx context.Context, paths []m.Path) ([]m.Path, error) {
	if len(paths) == 0 {
		paths = []m.Path{"." + recursiveSuffix}
	}

	seen := map[m.Path]bool{}

	var out []m.Path

	add := func(p string) {
		path := m.Path(filepath.Clean(p))
		if !seen[path] {
			seen[path] = true
			out = append(out, path)
		}
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		root, recursive := splitPattern(string(path))

		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}

		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}

			if d.IsDir() {
				if p != root && (!recursive || strings.HasPrefix(d.Name(), ".")) {
					return filepath.SkipDir
				}

				return nil
			}

			if IsGenomeFile(m.Path(p)) {
				add(p)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	if len(out) == 0 {
		return nil, ErrNoGenomes
	}

	slices.Sort(out)

	return out, nil
}

func splitPattern(path string) (root string, recursive bool) {
	if path == "..." {
		return ".", true
	}

	if strings.HasSuffix(path, recursiveSuffix) {
		root = strings.TrimSuffix(path, recursiveSuffix)
		if root == "" {
			root = "."
		}

		return root, true
	}

	return path, false
}

// IsGenomeFile reports whether path has a genome extension.
func IsGenomeFile(path m.Path) bool {
	return slices.Contains(GenomeExtensions, strings.ToLower(filepath.Ext(string(path))))
}

// GenomeName is the file name without its extension.
func GenomeName(path m.Path) string {
	base := filepath.Base(string(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ReadGenome implements GenomeFSAdapter.
func (a *LocalGenomeFSAdapter) ReadGenome(ctx context.Context, path m.Path) (m.Genome, error) {
	content, err := a.ReadFile(ctx, path)
	if err != nil {
		return m.Genome{}, err
	}

	sum := sha256.Sum256(content)

	return m.Genome{
		Path: path,
		Name: GenomeName(path),
		Text: string(content),
		Hash: fmt.Sprintf("%x", sum),
	}, nil
}

// ReadFile implements GenomeFSAdapter.
func (a *LocalGenomeFSAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return content, nil
}

// HashFile implements GenomeFSAdapter.
func (a *LocalGenomeFSAdapter) HashFile(ctx context.Context, path m.Path) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// WriteFile implements GenomeFSAdapter.
func (a *LocalGenomeFSAdapter) WriteFile(ctx context.Context, path m.Path, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := filepath.Dir(string(path)); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(string(path), content, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
