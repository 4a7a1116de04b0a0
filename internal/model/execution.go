package model

import (
	"fmt"
	"strings"
)

// Genome is a genome file loaded from disk.
type Genome struct {
	Path Path   `json:"path" yaml:"path" cbor:"path"`
	Name string `json:"name" yaml:"name" cbor:"name"`
	Text string `json:"-" yaml:"-" cbor:"-"`
	Hash string `json:"hash" yaml:"hash" cbor:"hash"`
}

// RenderCall is one renderer invocation.
type RenderCall struct {
	Method string    `json:"method" yaml:"method" cbor:"method"`
	Args   []float64 `json:"args,omitempty" yaml:"args,omitempty" cbor:"args,omitempty"`
}

func (c RenderCall) String() string {
	args := make([]string, 0, len(c.Args))
	for _, a := range c.Args {
		args = append(args, fmt.Sprintf("%g", a))
	}

	return c.Method + "(" + strings.Join(args, ", ") + ")"
}

// Execution is everything one run of a genome produced.
type Execution struct {
	Genome      Genome       `json:"genome" yaml:"genome" cbor:"genome"`
	Tokens      []Token      `json:"tokens" yaml:"tokens" cbor:"tokens"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty" cbor:"diagnostics,omitempty"`
	Trace       []VMState    `json:"trace" yaml:"trace" cbor:"trace"`
	Halt        HaltReason   `json:"halt" yaml:"halt" cbor:"halt"`
	Calls       []RenderCall `json:"calls,omitempty" yaml:"calls,omitempty" cbor:"calls,omitempty"`
}

// Instructions returns how many instructions the run executed.
func (e Execution) Instructions() int {
	if len(e.Trace) == 0 {
		return 0
	}

	return e.Trace[len(e.Trace)-1].InstructionCount
}

// Artifacts are the files a run wrote.
type Artifacts struct {
	Image Path `json:"image,omitempty" yaml:"image,omitempty"`
	Trace Path `json:"trace,omitempty" yaml:"trace,omitempty"`
}

// RunReport summarises one genome of a batch run.
type RunReport struct {
	Genome       Genome     `json:"genome" yaml:"genome"`
	Instructions int        `json:"instructions" yaml:"instructions"`
	Halt         HaltReason `json:"halt" yaml:"halt"`
	Warnings     int        `json:"warnings" yaml:"warnings"`
	Artifacts    Artifacts  `json:"artifacts" yaml:"artifacts"`
	Err          error      `json:"-" yaml:"-"`
}

// MutationImpact compares the runs of a genome before and after a mutation.
type MutationImpact struct {
	Mutation             MutationResult `json:"mutation" yaml:"mutation"`
	Differences          []Difference   `json:"differences" yaml:"differences"`
	OriginalInstructions int            `json:"originalInstructions" yaml:"originalInstructions"`
	MutatedInstructions  int            `json:"mutatedInstructions" yaml:"mutatedInstructions"`
	OriginalHalt         HaltReason     `json:"originalHalt" yaml:"originalHalt"`
	MutatedHalt          HaltReason     `json:"mutatedHalt" yaml:"mutatedHalt"`
	ChangedDrawCalls     int            `json:"changedDrawCalls" yaml:"changedDrawCalls"`
	MutatedDiagnostics   []Diagnostic   `json:"mutatedDiagnostics,omitempty" yaml:"mutatedDiagnostics,omitempty"`
}

// Visible reports whether the mutation changed what gets drawn.
func (i MutationImpact) Visible() bool {
	return i.ChangedDrawCalls > 0
}

// MutationSummary counts the mutations of a batch that changed the drawing.
type MutationSummary struct {
	Visible int `json:"visible" yaml:"visible"`
	Total   int `json:"total" yaml:"total"`
}

// Score is the visible fraction in [0, 1]; an empty batch scores 0.
func (s MutationSummary) Score() float64 {
	if s.Total == 0 {
		return 0
	}

	return float64(s.Visible) / float64(s.Total)
}
