package domain

import (
	"log/slog"
	"math"

	"helix.dev/pkg/helix/internal/adapter"
	m "helix.dev/pkg/helix/internal/model"
)

// DefaultMaxInstructions caps how many instructions one run may execute,
// counting every loop iteration.
const DefaultMaxInstructions = 10000

// VMOption is a functional option for NewVM.
type VMOption func(*VM)

// WithMaxInstructions overrides DefaultMaxInstructions. Non-positive values
// are ignored.
func WithMaxInstructions(limit int) VMOption {
	return func(v *VM) {
		if limit > 0 {
			v.maxInstructions = limit
		}
	}
}

// WithSeed sets the seed recorded in every snapshot.
func WithSeed(seed int64) VMOption {
	return func(v *VM) {
		v.seed = seed
	}
}

// VM executes tokens against a Renderer and records a snapshot after every
// instruction. A VM holds per-run state only; use one VM per goroutine.
type VM struct {
	renderer        adapter.Renderer
	maxInstructions int
	seed            int64

	tokens     []m.Token
	stack      []float64
	state      m.TransformState
	stateStack []m.TransformState
	executed   int
	trace      []m.VMState
	halt       m.HaltReason
}

// NewVM creates a VM drawing on renderer. A nil renderer draws nothing.
func NewVM(renderer adapter.Renderer, opts ...VMOption) *VM {
	if renderer == nil {
		renderer = adapter.NewNopRenderer()
	}

	v := &VM{
		renderer:        renderer,
		maxInstructions: DefaultMaxInstructions,
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Run executes tokens from the first START (or the first token when there is
// none) until a STOP, the end of the tokens or the instruction cap, and
// returns one snapshot per executed instruction. Run never fails: numeric
// problems and stack underflow are absorbed as zeros, and hitting the cap
// simply truncates the trace.
func (v *VM) Run(tokens []m.Token) []m.VMState {
	v.reset(tokens)
	v.renderer.Clear()

	if !v.execRange(startIndex(tokens), len(tokens)) {
		v.halt = m.HaltEnd
	}

	slog.Debug("vm run finished",
		"tokens", len(tokens),
		"instructions", v.executed,
		"halt", v.halt,
	)

	return v.trace
}

// HaltReason reports why the last Run stopped.
func (v *VM) HaltReason() m.HaltReason {
	return v.halt
}

// MaxInstructions returns the instruction cap.
func (v *VM) MaxInstructions() int {
	return v.maxInstructions
}

func (v *VM) reset(tokens []m.Token) {
	v.tokens = tokens
	v.stack = v.stack[:0]
	v.state = m.DefaultTransformState()
	v.stateStack = nil
	v.executed = 0
	v.trace = make([]m.VMState, 0, len(tokens))
	v.halt = ""
}

func startIndex(tokens []m.Token) int {
	for i, token := range tokens {
		if !token.Literal && token.Opcode == m.OpStart {
			return i
		}
	}

	return 0
}

// execRange runs the instructions in tokens[start:end]. It returns true when
// execution must halt (STOP or the instruction cap).
func (v *VM) execRange(start, end int) bool {
	ip := start

	for ip < end {
		if v.executed >= v.maxInstructions {
			v.halt = m.HaltLimit
			return true
		}

		next, halted := v.step(ip)
		if halted {
			return true
		}

		ip = next
	}

	return false
}

// instructionEnd returns the index just past the instruction at ip, so a PUSH
// and its literal are skipped together.
func (v *VM) instructionEnd(ip int) int {
	if v.tokens[ip].Opcode == m.OpPush && !v.tokens[ip].Literal &&
		ip+1 < len(v.tokens) && v.tokens[ip+1].Literal {
		return ip + 2
	}

	return ip + 1
}

// windowEnd returns the index just past the next n instructions starting at
// from, never beyond limit.
func (v *VM) windowEnd(from, n, limit int) int {
	ip := from
	for i := 0; i < n && ip < limit; i++ {
		ip = v.instructionEnd(ip)
	}

	if ip > limit {
		return limit
	}

	return ip
}

func (v *VM) snapshot(ip int) {
	stack := make([]float64, len(v.stack))
	copy(stack, v.stack)

	saved := make([]m.TransformState, len(v.stateStack))
	copy(saved, v.stateStack)

	v.trace = append(v.trace, m.VMState{
		Position:           v.state.Position,
		Rotation:           v.state.Rotation,
		Scale:              v.state.Scale,
		Color:              v.state.Color,
		Stack:              stack,
		InstructionPointer: ip,
		StateStack:         saved,
		InstructionCount:   v.executed,
		Seed:               v.seed,
	})
}

// sanitizeNumber maps NaN and ±Inf to 0.
func sanitizeNumber(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}

	return x
}

func (v *VM) push(x float64) {
	v.stack = append(v.stack, sanitizeNumber(x))
}

// pop returns the top of the stack, or 0 when the stack is empty.
func (v *VM) pop() float64 {
	if len(v.stack) == 0 {
		return 0
	}

	top := v.stack[len(v.stack)-1]
	v.stack = v.stack[:len(v.stack)-1]

	return sanitizeNumber(top)
}

// popCount pops a value used as a repeat or instruction count: truncated,
// never negative, at most limit.
func (v *VM) popCount(limit int) int {
	x := math.Trunc(v.pop())
	if x <= 0 {
		return 0
	}

	if x >= float64(limit) {
		return limit
	}

	return int(x)
}
