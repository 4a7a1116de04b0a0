package domain

import (
	"bytes"
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"helix.dev/pkg/helix/internal/adapter"
	adaptermocks "helix.dev/pkg/helix/internal/adapter/mocks"
	"helix.dev/pkg/helix/internal/controller"
	"helix.dev/pkg/helix/internal/domain/mutagens"
	m "helix.dev/pkg/helix/internal/model"
)

type stubImageRenderer struct {
	*adapter.RecordingRenderer
	closed bool
}

func (r *stubImageRenderer) PNG() ([]byte, error) {
	return []byte("png"), nil
}

func (r *stubImageRenderer) Close() error {
	r.closed = true
	return nil
}

type workflowFixture struct {
	workflow  Workflow
	out       *bytes.Buffer
	root      string
	mu        sync.Mutex
	renderers []*stubImageRenderer
}

func newWorkflowFixture(t *testing.T, format adapter.TraceFormat) *workflowFixture {
	t.Helper()

	f := &workflowFixture{out: &bytes.Buffer{}, root: t.TempDir()}

	cmd := &cobra.Command{}
	cmd.SetOut(f.out)

	fsAdapter := adapter.NewLocalGenomeFSAdapter()
	f.workflow = NewWorkflow(
		fsAdapter,
		adapter.NewTraceStore(fsAdapter, format),
		controller.NewSimpleUI(cmd),
		NewExecutor(NewLexer()),
		NewMutagen(WithRand(rand.New(rand.NewPCG(3, 5)))),
		WithImageRenderer(func(_, _ int) adapter.ImageRenderer {
			r := &stubImageRenderer{RecordingRenderer: adapter.NewRecordingRenderer()}
			f.mu.Lock()
			f.renderers = append(f.renderers, r)
			f.mu.Unlock()

			return r
		}),
	)

	return f
}

func (f *workflowFixture) write(t *testing.T, name, content string) m.Path {
	t.Helper()

	path := filepath.Join(f.root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return m.Path(path)
}

func TestWorkflow_Run_WritesArtifacts(t *testing.T) {
	f := newWorkflowFixture(t, adapter.TraceYAML)
	f.write(t, "genomes/circle.genome", circleGenome)
	f.write(t, "genomes/empty.dna", "ATG TAA")
	output := filepath.Join(f.root, "out")

	err := f.workflow.Run(context.Background(), RunArgs{
		Paths:  []m.Path{m.Path(filepath.Join(f.root, "genomes"))},
		Output: m.Path(output),
	})
	require.NoError(t, err)

	for _, name := range []string{"circle.png", "circle.trace.yaml", "empty.png", "empty.trace.yaml"} {
		assert.FileExists(t, filepath.Join(output, name))
	}

	image, err := os.ReadFile(filepath.Join(output, "circle.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(image))

	data, err := os.ReadFile(filepath.Join(output, "circle.trace.yaml"))
	require.NoError(t, err)

	execution, err := adapter.DecodeExecution(adapter.TraceYAML, data)
	require.NoError(t, err)
	assert.Equal(t, 4, execution.Instructions())
	assert.Equal(t, m.HaltStop, execution.Halt)

	require.Len(t, f.renderers, 2)
	for _, r := range f.renderers {
		assert.True(t, r.closed)
	}

	assert.Contains(t, f.out.String(), "circle.genome: 4 instruction(s), halted on stop")
}

func TestWorkflow_Run_ParallelWithFailures(t *testing.T) {
	f := newWorkflowFixture(t, adapter.TraceJSON)
	good := f.write(t, "good.genome", circleGenome)
	bad := f.write(t, "bad.genome", "GGA TAA")

	err := f.workflow.Run(context.Background(), RunArgs{
		Paths:    []m.Path{good, bad},
		Parallel: 2,
	})
	require.ErrorIs(t, err, ErrRunFailed)
	assert.Contains(t, err.Error(), "1 of 2")

	var parseErrs m.ParseErrors
	assert.NotErrorAs(t, err, &parseErrs, "per-genome errors stay in the reports")
	assert.Contains(t, f.out.String(), "Program must start with START codon (ATG), found GGA")
}

func TestWorkflow_Run_SkipsArtifactsWithoutOutput(t *testing.T) {
	f := newWorkflowFixture(t, adapter.TraceJSON)
	path := f.write(t, "circle.genome", circleGenome)

	require.NoError(t, f.workflow.Run(context.Background(), RunArgs{Paths: []m.Path{path}}))

	entries, err := os.ReadDir(f.root)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWorkflow_Run_ExpandError(t *testing.T) {
	fsAdapter := adaptermocks.NewMockGenomeFSAdapter(t)
	fsAdapter.On("Expand", mock.Anything, []m.Path{"missing"}).Return(nil, adapter.ErrNoGenomes)

	w := NewWorkflow(fsAdapter, nil, nil, nil, nil)

	err := w.Run(context.Background(), RunArgs{Paths: []m.Path{"missing"}})
	require.ErrorIs(t, err, adapter.ErrNoGenomes)
}

func TestArtifactNames(t *testing.T) {
	names := artifactNames([]m.Path{"a/circle.genome", "b/circle.dna", "circle-2.genome", "c/circle.genome", "line.genome"})

	assert.Equal(t, []string{"circle", "circle-2", "circle-2-2", "circle-3", "line"}, names)
}

func TestWorkflow_Check(t *testing.T) {
	f := newWorkflowFixture(t, adapter.TraceJSON)
	path := f.write(t, "circle.genome", circleGenome)

	require.NoError(t, f.workflow.Check(context.Background(), CheckArgs{Paths: []m.Path{path}, Calls: true}))

	out := f.out.String()
	assert.Contains(t, out, "5 codon(s)")
	assert.Contains(t, out, "circle.genome: ok")
	assert.Contains(t, out, "circle(21)")
}

func TestWorkflow_Check_AggregatesFailures(t *testing.T) {
	f := newWorkflowFixture(t, adapter.TraceJSON)
	first := f.write(t, "first.genome", "GGA TAA")
	second := f.write(t, "second.genome", "ATG GGA")
	good := f.write(t, "good.genome", circleGenome)

	err := f.workflow.Check(context.Background(), CheckArgs{Paths: []m.Path{first, second, good}, Calls: true})
	require.ErrorIs(t, err, ErrCheckFailed)

	var parseErrs m.ParseErrors
	require.ErrorAs(t, err, &parseErrs)
	assert.Contains(t, err.Error(), "first.genome")
	assert.Contains(t, err.Error(), "second.genome")
	assert.NotContains(t, err.Error(), "good.genome")
}

func TestWorkflow_Mutate_SingleAndWrite(t *testing.T) {
	f := newWorkflowFixture(t, adapter.TraceJSON)
	path := f.write(t, "circle.genome", circleGenome)
	target := m.Path(filepath.Join(f.root, "mutants", "circle.genome"))

	err := f.workflow.Mutate(context.Background(), MutateArgs{
		Path:     path,
		Type:     m.MutationNonsense,
		Position: 3,
		Write:    target,
	})
	require.NoError(t, err)

	written, err := os.ReadFile(string(target))
	require.NoError(t, err)
	assert.Equal(t, "ATG GAA CCC TAA TAA\n", string(written))

	out := f.out.String()
	assert.Contains(t, out, "Nonsense mutation")
	assert.Contains(t, out, "-GGA")
	assert.Contains(t, out, "+TAA")
	assert.Contains(t, out, "Changed draw calls: 1 (visible)")
}

func TestWorkflow_Mutate_Errors(t *testing.T) {
	f := newWorkflowFixture(t, adapter.TraceJSON)
	path := f.write(t, "circle.genome", circleGenome)
	ctx := context.Background()

	err := f.workflow.Mutate(ctx, MutateArgs{Path: path, Type: "mystery"})
	require.ErrorIs(t, err, ErrUnknownMutationType)

	err = f.workflow.Mutate(ctx, MutateArgs{Path: path, Type: m.MutationPoint, Count: 2, Write: "x.genome"})
	require.ErrorIs(t, err, ErrWriteMultiple)

	err = f.workflow.Mutate(ctx, MutateArgs{Path: m.Path(filepath.Join(f.root, "missing.genome")), Type: m.MutationPoint})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWorkflow_Mutate_Stream(t *testing.T) {
	f := newWorkflowFixture(t, adapter.TraceJSON)
	path := f.write(t, "circle.genome", circleGenome)

	require.NoError(t, f.workflow.Mutate(context.Background(), MutateArgs{Path: path, Count: 7}))
	assert.Contains(t, f.out.String(), "Changed draw calls:")
	assert.Contains(t, f.out.String(), "mutation(s) visible")
}

func TestWorkflow_Mutate_StreamWithNothingApplicable(t *testing.T) {
	f := newWorkflowFixture(t, adapter.TraceJSON)
	path := f.write(t, "start.genome", "ATG")

	err := f.workflow.Mutate(context.Background(), MutateArgs{Path: path, Type: m.MutationNonsense, Count: 3})
	require.ErrorIs(t, err, mutagens.ErrNoAlternative)
}

func TestWorkflow_Diff(t *testing.T) {
	f := newWorkflowFixture(t, adapter.TraceJSON)
	original := f.write(t, "a.genome", circleGenome)
	mutated := f.write(t, "b.genome", "ATG GAA CCC TAA TAA")

	require.NoError(t, f.workflow.Diff(context.Background(), DiffArgs{Original: original, Mutated: mutated}))

	out := f.out.String()
	assert.Contains(t, out, "GGA")
	assert.Contains(t, out, "TAA")
}

func TestWorkflow_Step_Genome(t *testing.T) {
	f := newWorkflowFixture(t, adapter.TraceJSON)
	path := f.write(t, "circle.genome", circleGenome)

	require.NoError(t, f.workflow.Step(context.Background(), StepArgs{Path: path}))
	assert.Contains(t, f.out.String(), "Halted on stop after 4 instruction(s)")
}

func TestWorkflow_Step_SavedTrace(t *testing.T) {
	f := newWorkflowFixture(t, adapter.TraceCBOR)
	path := f.write(t, "circle.genome", circleGenome)
	output := filepath.Join(f.root, "out")

	require.NoError(t, f.workflow.Run(context.Background(), RunArgs{Paths: []m.Path{path}, Output: m.Path(output)}))
	f.out.Reset()

	trace := m.Path(filepath.Join(output, "circle.trace.cbor"))
	require.NoError(t, f.workflow.Step(context.Background(), StepArgs{Path: trace}))
	assert.Contains(t, f.out.String(), "Halted on stop after 4 instruction(s)")
}

func TestWorkflow_Step_ParseError(t *testing.T) {
	f := newWorkflowFixture(t, adapter.TraceJSON)
	path := f.write(t, "broken.genome", "GGA")

	err := f.workflow.Step(context.Background(), StepArgs{Path: path})

	var parseErrs m.ParseErrors
	require.ErrorAs(t, err, &parseErrs)
	assert.Contains(t, f.out.String(), "Program must start with START codon")
}
