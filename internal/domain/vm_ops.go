package domain

import (
	"helix.dev/pkg/helix/internal/adapter"
	m "helix.dev/pkg/helix/internal/model"
)

// step executes the instruction at ip and returns the index of the next one.
// halted is true once a STOP ran or the instruction cap was hit inside a loop.
//
//nolint:cyclop,funlen // One case per opcode.
func (v *VM) step(ip int) (next int, halted bool) {
	token := v.tokens[ip]
	next = ip + 1
	v.executed++

	if token.Literal {
		// A literal only runs on its own when execution starts on it.
		v.snapshot(ip)
		return next, false
	}

	switch token.Opcode {
	case m.OpStart, m.OpNop, m.OpInvalid:
	case m.OpStop:
		v.snapshot(ip)
		v.halt = m.HaltStop

		return next, true

	case m.OpPush:
		if next < len(v.tokens) && v.tokens[next].Literal {
			v.push(float64(v.tokens[next].Value))
			next++
		} else {
			v.push(0)
		}

	case m.OpDup:
		top := v.pop()
		v.push(top)
		v.push(top)
	case m.OpPop:
		v.pop()
	case m.OpSwap:
		b, a := v.pop(), v.pop()
		v.push(b)
		v.push(a)

	case m.OpAdd:
		b, a := v.pop(), v.pop()
		v.push(a + b)
	case m.OpSub:
		b, a := v.pop(), v.pop()
		v.push(a - b)
	case m.OpMul:
		b, a := v.pop(), v.pop()
		v.push(a * b)
	case m.OpDiv:
		b, a := v.pop(), v.pop()
		if b == 0 {
			v.push(0)
		} else {
			v.push(a / b)
		}
	case m.OpEq:
		b, a := v.pop(), v.pop()
		v.push(boolToNumber(a == b))
	case m.OpLt:
		b, a := v.pop(), v.pop()
		v.push(boolToNumber(a < b))

	case m.OpLoop:
		return v.loop(ip)

	case m.OpSaveState:
		v.stateStack = append(v.stateStack, v.state)
		if sr, ok := v.renderer.(adapter.StateRenderer); ok {
			sr.Save()
		}
	case m.OpRestoreState:
		if len(v.stateStack) > 0 {
			v.state = v.stateStack[len(v.stateStack)-1]
			v.stateStack = v.stateStack[:len(v.stateStack)-1]

			if sr, ok := v.renderer.(adapter.StateRenderer); ok {
				sr.Restore()
			}
		}

	case m.OpTranslate:
		dy, dx := v.pop(), v.pop()
		v.state.Position.X += dx
		v.state.Position.Y += dy
		v.renderer.Translate(dx, dy)
	case m.OpRotate:
		degrees := v.pop()
		v.state.Rotation += degrees
		v.renderer.Rotate(degrees)
	case m.OpScale:
		factor := v.pop()
		v.state.Scale = sanitizeNumber(v.state.Scale * factor)
		v.renderer.Scale(factor)
	case m.OpColor:
		l, s, h := v.pop(), v.pop(), v.pop()
		v.state.Color = m.HSL{H: h, S: s, L: l}
		v.renderer.SetColor(h, s, l)

	case m.OpCircle:
		v.renderer.Circle(v.pop())
	case m.OpRect:
		height, width := v.pop(), v.pop()
		v.renderer.Rect(width, height)
	case m.OpLine:
		v.renderer.Line(v.pop())
	case m.OpTriangle:
		v.renderer.Triangle(v.pop())
	case m.OpEllipse:
		ry, rx := v.pop(), v.pop()
		v.renderer.Ellipse(rx, ry)
	}

	v.snapshot(ip)

	return next, false
}

// loop pops count then n and runs the next n instructions count times. The
// LOOP itself gets a snapshot before its body runs; every body instruction
// gets one per iteration.
func (v *VM) loop(ip int) (int, bool) {
	count := v.popCount(v.maxInstructions)
	n := v.popCount(len(v.tokens))
	v.snapshot(ip)

	bodyStart := ip + 1
	bodyEnd := v.windowEnd(bodyStart, n, len(v.tokens))

	if bodyEnd == bodyStart {
		return bodyEnd, false
	}

	for range count {
		if v.execRange(bodyStart, bodyEnd) {
			return bodyEnd, true
		}
	}

	return bodyEnd, false
}

func boolToNumber(b bool) float64 {
	if b {
		return 1
	}

	return 0
}
