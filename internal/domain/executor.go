package domain

import (
	"context"
	"fmt"
	"log/slog"

	"helix.dev/pkg/helix/internal/adapter"
	m "helix.dev/pkg/helix/internal/model"
)

// Executor coordinates lexing a genome and running it on the VM against a
// renderer.
type Executor interface {
	// Execute parses genome and runs it on renderer. Parse errors abort the
	// run and are returned as a m.ParseErrors; the partial execution still
	// carries the tokens and diagnostics.
	Execute(ctx context.Context, genome m.Genome, renderer adapter.Renderer) (m.Execution, error)
	// Simulate runs genome on a recording renderer even when it has parse
	// errors, so broken mutants can still be compared.
	Simulate(ctx context.Context, genome m.Genome) (m.Execution, error)
}

type callRecorder interface {
	Calls() []m.RenderCall
}

type executor struct {
	lexer  Lexer
	vmOpts []VMOption
}

// NewExecutor constructs an Executor using lexer and VMs built with opts.
func NewExecutor(lexer Lexer, opts ...VMOption) Executor {
	if lexer == nil {
		lexer = NewLexer()
	}

	return &executor{lexer: lexer, vmOpts: opts}
}

func (e *executor) Execute(ctx context.Context, genome m.Genome, renderer adapter.Renderer) (m.Execution, error) {
	if err := ctx.Err(); err != nil {
		return m.Execution{}, err
	}

	tokens, diags, err := e.lexer.Parse(genome.Text)
	execution := m.Execution{Genome: genome, Tokens: tokens, Diagnostics: diags}

	if err != nil {
		slog.Debug("genome rejected", "path", genome.Path, "error", err)
		return execution, fmt.Errorf("%s: %w", genome.Path, err)
	}

	e.run(&execution, renderer)

	return execution, nil
}

func (e *executor) Simulate(ctx context.Context, genome m.Genome) (m.Execution, error) {
	if err := ctx.Err(); err != nil {
		return m.Execution{}, err
	}

	tokens, diags, _ := e.lexer.Parse(genome.Text)
	execution := m.Execution{Genome: genome, Tokens: tokens, Diagnostics: diags}

	e.run(&execution, adapter.NewRecordingRenderer())

	return execution, nil
}

func (e *executor) run(execution *m.Execution, renderer adapter.Renderer) {
	vm := NewVM(renderer, e.vmOpts...)

	execution.Trace = vm.Run(execution.Tokens)
	execution.Halt = vm.HaltReason()

	if recorder, ok := renderer.(callRecorder); ok {
		execution.Calls = recorder.Calls()
	}

	slog.Debug("genome executed",
		"path", execution.Genome.Path,
		"instructions", execution.Instructions(),
		"halt", execution.Halt,
	)
}
