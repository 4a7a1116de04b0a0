// Package model defines the data structures shared by the codon pipeline.
package model

import "strings"

// Codon is a three-base unit of genome text, e.g. "ATG".
type Codon string

// Opcode is the instruction a codon decodes to.
type Opcode uint8

// Available opcodes. OpInvalid marks an unrecognized codon or a literal
// operand consumed by a preceding PUSH.
const (
	OpInvalid Opcode = iota
	OpStart
	OpStop
	OpNop
	OpPush
	OpDup
	OpPop
	OpSwap
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpEq
	OpLt
	OpLoop
	OpSaveState
	OpRestoreState
	OpTranslate
	OpRotate
	OpScale
	OpColor
	OpCircle
	OpRect
	OpLine
	OpTriangle
	OpEllipse

	opcodeCount
)

var opcodeNames = [...]string{
	OpInvalid:      "INVALID",
	OpStart:        "START",
	OpStop:         "STOP",
	OpNop:          "NOP",
	OpPush:         "PUSH",
	OpDup:          "DUP",
	OpPop:          "POP",
	OpSwap:         "SWAP",
	OpAdd:          "ADD",
	OpSub:          "SUB",
	OpMul:          "MUL",
	OpDiv:          "DIV",
	OpEq:           "EQ",
	OpLt:           "LT",
	OpLoop:         "LOOP",
	OpSaveState:    "SAVE_STATE",
	OpRestoreState: "RESTORE_STATE",
	OpTranslate:    "TRANSLATE",
	OpRotate:       "ROTATE",
	OpScale:        "SCALE",
	OpColor:        "COLOR",
	OpCircle:       "CIRCLE",
	OpRect:         "RECT",
	OpLine:         "LINE",
	OpTriangle:     "TRIANGLE",
	OpEllipse:      "ELLIPSE",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}

	return opcodeNames[OpInvalid]
}

// Valid reports whether op is a real instruction.
func (op Opcode) Valid() bool {
	return op > OpInvalid && op < opcodeCount
}

// Opcodes returns every valid opcode in declaration order.
func Opcodes() []Opcode {
	ops := make([]Opcode, 0, int(opcodeCount)-1)
	for op := OpStart; op < opcodeCount; op++ {
		ops = append(ops, op)
	}

	return ops
}

// ParseOpcode resolves an opcode by its name (case-insensitive).
func ParseOpcode(name string) (Opcode, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for op := OpStart; op < opcodeCount; op++ {
		if opcodeNames[op] == name {
			return op, true
		}
	}

	return OpInvalid, false
}

// MarshalText renders the opcode by name so traces and token dumps stay readable.
func (op Opcode) MarshalText() ([]byte, error) {
	return []byte(op.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (op *Opcode) UnmarshalText(text []byte) error {
	parsed, ok := ParseOpcode(string(text))
	if !ok {
		*op = OpInvalid
		return nil
	}

	*op = parsed

	return nil
}
