// Package controller provides output adapters for displaying helix results.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "helix.dev/pkg/helix/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeRun StartMode = iota
	ModeCheck
	ModeMutate
	ModeStep
)

func (s StartMode) String() string {
	switch s {
	case ModeRun:
		return "run"
	case ModeCheck:
		return "check"
	case ModeMutate:
		return "mutate"
	case ModeStep:
		return "step"
	default:
		return "unknown"
	}
}

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode    StartMode
	workers int
}

// WithRunMode sets the UI to batch run mode with the given worker count.
func WithRunMode(workers int) StartOption {
	return func(c *StartConfig) {
		c.mode = ModeRun
		c.workers = workers
	}
}

// WithCheckMode sets the UI to validation mode.
func WithCheckMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeCheck
	}
}

// WithMutateMode sets the UI to mutation mode.
func WithMutateMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeMutate
	}
}

// WithStepMode sets the UI to trace stepping mode.
func WithStepMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeStep
	}
}

func newStartConfig(options []StartOption) StartConfig {
	cfg := StartConfig{mode: ModeRun, workers: 1}
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// UI defines the interface for displaying helix results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	DisplayTokens(ctx context.Context, genome m.Genome, tokens []m.Token)
	DisplayDiagnostics(ctx context.Context, genome m.Genome, diagnostics []m.Diagnostic)
	DisplayCalls(ctx context.Context, calls []m.RenderCall)
	DisplayRunReport(ctx context.Context, report m.RunReport)
	DisplayRunSummary(ctx context.Context, reports []m.RunReport)
	DisplayMutation(ctx context.Context, impact m.MutationImpact)
	DisplayMutationSummary(ctx context.Context, summary m.MutationSummary)
	DisplayDifferences(ctx context.Context, differences []m.Difference)
	// DisplayTrace shows an execution step by step. Interactive
	// implementations block until the user quits.
	DisplayTrace(ctx context.Context, execution m.Execution) error
}

// NewUI picks the TUI when output goes to a terminal and the plain UI
// otherwise.
func NewUI(cmd *cobra.Command, isTTY bool) UI {
	if isTTY {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is an interactive terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
