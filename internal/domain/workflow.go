package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"

	"golang.org/x/sync/errgroup"

	"helix.dev/pkg/helix/internal/adapter"
	"helix.dev/pkg/helix/internal/controller"
	"helix.dev/pkg/helix/internal/domain/mutagens"
	m "helix.dev/pkg/helix/internal/model"
)

// Default raster size used when RunArgs leaves it unset.
const (
	DefaultWidth  = 400
	DefaultHeight = 400
)

var (
	// ErrRunFailed is returned when at least one genome of a batch failed.
	ErrRunFailed = errors.New("run failed")
	// ErrCheckFailed is returned when at least one genome has errors.
	ErrCheckFailed = errors.New("check failed")
	// ErrWriteMultiple is returned when --write is combined with several mutations.
	ErrWriteMultiple = errors.New("cannot write more than one mutation")
)

// RunArgs contains the arguments for executing genomes.
type RunArgs struct {
	Paths    []m.Path
	Output   m.Path
	Parallel int
	Width    int
	Height   int
}

// CheckArgs contains the arguments for validating genomes.
type CheckArgs struct {
	Paths []m.Path
	Calls bool
}

// MutateArgs contains the arguments for mutating a genome. An empty Type
// with Count above one cycles through every mutation type.
type MutateArgs struct {
	Path     m.Path
	Type     m.MutationType
	Position int
	Length   int
	Write    m.Path
	Count    int
}

// DiffArgs contains the two genomes to compare.
type DiffArgs struct {
	Original m.Path
	Mutated  m.Path
}

// StepArgs names a genome, or a saved trace, to step through.
type StepArgs struct {
	Path m.Path
}

// Workflow is what the CLI commands drive.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) error
	Check(ctx context.Context, args CheckArgs) error
	Mutate(ctx context.Context, args MutateArgs) error
	Diff(ctx context.Context, args DiffArgs) error
	Step(ctx context.Context, args StepArgs) error
}

// WorkflowOption configures NewWorkflow.
type WorkflowOption func(*workflow)

// WithImageRenderer replaces the renderer factory used by Run.
func WithImageRenderer(factory adapter.ImageRendererFactory) WorkflowOption {
	return func(w *workflow) {
		if factory != nil {
			w.newRenderer = factory
		}
	}
}

type workflow struct {
	adapter.GenomeFSAdapter
	adapter.TraceStore
	controller.UI
	Executor
	Mutagen

	newRenderer adapter.ImageRendererFactory
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.GenomeFSAdapter,
	traceStore adapter.TraceStore,
	ui controller.UI,
	executor Executor,
	mutagen Mutagen,
	opts ...WorkflowOption,
) Workflow {
	w := &workflow{
		GenomeFSAdapter: fsAdapter,
		TraceStore:      traceStore,
		UI:              ui,
		Executor:        executor,
		Mutagen:         mutagen,
		newRenderer:     adapter.NewRasterImageRenderer,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Run executes every genome found under args.Paths on its own raster
// surface and writes the image and trace of each to args.Output.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	paths, err := w.Expand(ctx, args.Paths)
	if err != nil {
		return fmt.Errorf("expand paths: %w", err)
	}

	if err := w.Start(ctx, controller.WithRunMode(args.Parallel)); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer w.Close(ctx)

	names := artifactNames(paths)
	reports := make([]m.RunReport, len(paths))

	var group errgroup.Group
	if args.Parallel > 0 {
		group.SetLimit(args.Parallel)
	}

	for i, path := range paths {
		group.Go(func() error {
			reports[i] = w.runGenome(ctx, path, names[i], args)
			w.DisplayRunReport(ctx, reports[i])

			return nil
		})
	}

	_ = group.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	w.DisplayRunSummary(ctx, reports)

	failed := 0

	for _, report := range reports {
		if report.Err != nil {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d genome(s)", ErrRunFailed, failed, len(reports))
	}

	return nil
}

func (w *workflow) runGenome(ctx context.Context, path m.Path, name string, args RunArgs) m.RunReport {
	report := m.RunReport{Genome: m.Genome{Path: path, Name: adapter.GenomeName(path)}}

	genome, err := w.ReadGenome(ctx, path)
	if err != nil {
		report.Err = err
		return report
	}

	report.Genome = genome

	renderer := w.newRenderer(orDefault(args.Width, DefaultWidth), orDefault(args.Height, DefaultHeight))
	defer func() {
		if err := renderer.Close(); err != nil {
			slog.Debug("close renderer", "path", path, "error", err)
		}
	}()

	execution, err := w.Execute(ctx, genome, renderer)
	report.Warnings = countWarnings(execution.Diagnostics)

	if len(execution.Diagnostics) > 0 {
		w.DisplayDiagnostics(ctx, genome, execution.Diagnostics)
	}

	if err != nil {
		report.Err = err
		return report
	}

	report.Instructions = execution.Instructions()
	report.Halt = execution.Halt

	if args.Output == "" {
		return report
	}

	report.Artifacts, report.Err = w.saveArtifacts(ctx, args.Output, name, renderer, execution)
	if report.Err != nil {
		slog.Error("failed to save artifacts", "path", path, "error", report.Err)
	}

	return report
}

func (w *workflow) saveArtifacts(ctx context.Context, output m.Path, name string, renderer adapter.ImageRenderer, execution m.Execution) (m.Artifacts, error) {
	var artifacts m.Artifacts

	image, err := renderer.PNG()
	if err != nil {
		return artifacts, fmt.Errorf("encode image: %w", err)
	}

	imagePath := m.Path(filepath.Join(string(output), name+".png"))
	if err := w.WriteFile(ctx, imagePath, image); err != nil {
		return artifacts, fmt.Errorf("write image: %w", err)
	}

	artifacts.Image = imagePath

	tracePath := m.Path(filepath.Join(string(output), name+".trace."+string(w.Format())))
	if err := w.SaveExecution(ctx, tracePath, execution); err != nil {
		return artifacts, fmt.Errorf("write trace: %w", err)
	}

	artifacts.Trace = tracePath

	return artifacts, nil
}

// artifactNames gives every path a distinct output name, suffixing repeats
// of the same genome name with -2, -3 and so on.
func artifactNames(paths []m.Path) []string {
	names := make([]string, len(paths))
	taken := map[string]bool{}

	for i, path := range paths {
		base := adapter.GenomeName(path)

		name := base
		for n := 2; taken[name]; n++ {
			name = base + "-" + strconv.Itoa(n)
		}

		taken[name] = true
		names[i] = name
	}

	return names
}

// Check validates every genome found under args.Paths and shows its tokens
// and diagnostics.
func (w *workflow) Check(ctx context.Context, args CheckArgs) error {
	paths, err := w.Expand(ctx, args.Paths)
	if err != nil {
		return fmt.Errorf("expand paths: %w", err)
	}

	if err := w.Start(ctx, controller.WithCheckMode()); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer w.Close(ctx)

	var failures []error

	for _, path := range paths {
		if err := w.checkGenome(ctx, path, args.Calls); err != nil {
			failures = append(failures, err)
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("%w: %w", ErrCheckFailed, errors.Join(failures...))
	}

	return nil
}

func (w *workflow) checkGenome(ctx context.Context, path m.Path, calls bool) error {
	genome, err := w.ReadGenome(ctx, path)
	if err != nil {
		return err
	}

	execution, err := w.Execute(ctx, genome, adapter.NewRecordingRenderer())

	w.DisplayTokens(ctx, genome, execution.Tokens)
	w.DisplayDiagnostics(ctx, genome, execution.Diagnostics)

	if err != nil {
		return err
	}

	if calls {
		w.DisplayCalls(ctx, execution.Calls)
	}

	return nil
}

// Mutate applies mutations to a genome and shows how each one changes the
// run. A single mutation may be written back with args.Write.
func (w *workflow) Mutate(ctx context.Context, args MutateArgs) error {
	if args.Write != "" && args.Count > 1 {
		return ErrWriteMultiple
	}

	genome, err := w.ReadGenome(ctx, args.Path)
	if err != nil {
		return err
	}

	if err := w.Start(ctx, controller.WithMutateMode()); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer w.Close(ctx)

	original, err := w.Simulate(ctx, genome)
	if err != nil {
		return err
	}

	if args.Count > 1 || args.Type == "" {
		return w.streamImpacts(ctx, genome, original, args)
	}

	result, err := w.Apply(args.Type, genome.Text, args.Position, args.Length)
	if err != nil {
		return fmt.Errorf("%s: %w", genome.Path, err)
	}

	if _, err := w.showImpact(ctx, genome, original, result); err != nil {
		return err
	}

	if args.Write == "" {
		return nil
	}

	if err := w.WriteFile(ctx, args.Write, []byte(result.Mutated+"\n")); err != nil {
		return fmt.Errorf("write mutated genome: %w", err)
	}

	hash, err := w.HashFile(ctx, args.Write)
	if err != nil {
		return fmt.Errorf("hash mutated genome: %w", err)
	}

	slog.Info("mutated genome written", "path", args.Write, "type", result.Type, "hash", hash)

	return nil
}

func (w *workflow) streamImpacts(ctx context.Context, genome m.Genome, original m.Execution, args MutateArgs) error {
	var mutationTypes []m.MutationType
	if args.Type != "" {
		mutationTypes = append(mutationTypes, args.Type)
	}

	mutationCh, errCh := w.StreamMutations(ctx, genome.Text, max(args.Count, 1), mutationTypes...)

	var score mutationScore

	for result := range mutationCh {
		impact, err := w.showImpact(ctx, genome, original, result)
		if err != nil {
			slog.Error("failed to simulate mutation", "path", genome.Path, "type", result.Type, "error", err)
			continue
		}

		score.add(impact)
	}

	if err := <-errCh; err != nil {
		return err
	}

	summary := score.Summary()
	if summary.Total == 0 {
		return fmt.Errorf("%s: %w", genome.Path, mutagens.ErrNoAlternative)
	}

	w.DisplayMutationSummary(ctx, summary)

	return nil
}

func (w *workflow) showImpact(ctx context.Context, genome m.Genome, original m.Execution, result m.MutationResult) (m.MutationImpact, error) {
	mutant := genome
	mutant.Text = result.Mutated

	mutated, err := w.Simulate(ctx, mutant)
	if err != nil {
		return m.MutationImpact{}, err
	}

	differences := w.CompareGenomes(result.Original, result.Mutated)
	impact := mutationImpact(result, differences, original, mutated)
	w.DisplayMutation(ctx, impact)

	return impact, nil
}

// Diff compares two genome files codon by codon.
func (w *workflow) Diff(ctx context.Context, args DiffArgs) error {
	original, err := w.ReadGenome(ctx, args.Original)
	if err != nil {
		return err
	}

	mutated, err := w.ReadGenome(ctx, args.Mutated)
	if err != nil {
		return err
	}

	w.DisplayDifferences(ctx, w.CompareGenomes(original.Text, mutated.Text))

	return nil
}

// Step shows an execution snapshot by snapshot. args.Path may be a genome,
// which is executed, or a trace saved by Run, which is loaded as is.
func (w *workflow) Step(ctx context.Context, args StepArgs) error {
	if err := w.Start(ctx, controller.WithStepMode()); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer w.Close(ctx)

	execution, err := w.loadExecution(ctx, args.Path)
	if err != nil {
		return err
	}

	return w.DisplayTrace(ctx, execution)
}

func (w *workflow) loadExecution(ctx context.Context, path m.Path) (m.Execution, error) {
	if !adapter.IsGenomeFile(path) {
		if _, err := adapter.ParseTraceFormat(filepath.Ext(string(path))); err == nil {
			return w.LoadExecution(ctx, path)
		}
	}

	genome, err := w.ReadGenome(ctx, path)
	if err != nil {
		return m.Execution{}, err
	}

	execution, err := w.Execute(ctx, genome, adapter.NewRecordingRenderer())
	if err != nil {
		w.DisplayDiagnostics(ctx, genome, execution.Diagnostics)
		return m.Execution{}, err
	}

	return execution, nil
}

func countWarnings(diagnostics []m.Diagnostic) int {
	n := 0

	for _, d := range diagnostics {
		if d.Severity == m.SeverityWarning {
			n++
		}
	}

	return n
}

func orDefault(v, fallback int) int {
	if v <= 0 {
		return fallback
	}

	return v
}
