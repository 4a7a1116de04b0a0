package model

import (
	"fmt"
	"strings"
)

// Token is one codon of a genome after lexing.
type Token struct {
	Codon Codon `json:"codon" yaml:"codon" cbor:"codon"`
	// Opcode is OpInvalid for literals and unrecognized codons.
	Opcode Opcode `json:"opcode" yaml:"opcode" cbor:"opcode"`
	// Literal is true when the codon is the operand of a preceding PUSH.
	Literal     bool `json:"literal" yaml:"literal" cbor:"literal"`
	Value       int  `json:"value" yaml:"value" cbor:"value"`
	SourceIndex int  `json:"sourceIndex" yaml:"sourceIndex" cbor:"sourceIndex"`
	Line        int  `json:"line" yaml:"line" cbor:"line"`
}

// Recognized reports whether the token is a literal or a known instruction.
func (t Token) Recognized() bool {
	return t.Literal || t.Opcode.Valid()
}

// Severity classifies a diagnostic.
type Severity string

const (
	// SeverityError marks structural problems (missing START/STOP, unknown codon).
	SeverityError Severity = "error"
	// SeverityWarning marks informational problems such as frame misalignment.
	SeverityWarning Severity = "warning"
)

// Diagnostic is a parse error or warning. Position is an offset into the
// cleaned base sequence.
type Diagnostic struct {
	Message  string   `json:"message" yaml:"message" cbor:"message"`
	Severity Severity `json:"severity" yaml:"severity" cbor:"severity"`
	Position int      `json:"position" yaml:"position" cbor:"position"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s at %d: %s", d.Severity, d.Position, d.Message)
}

// ParseError builds an error diagnostic.
func ParseError(message string, position int) Diagnostic {
	return Diagnostic{Message: message, Severity: SeverityError, Position: position}
}

// ParseWarning builds a warning diagnostic.
func ParseWarning(message string, position int) Diagnostic {
	return Diagnostic{Message: message, Severity: SeverityWarning, Position: position}
}

// ParseErrors aggregates error diagnostics into a single error value.
type ParseErrors []Diagnostic

func (e ParseErrors) Error() string {
	messages := make([]string, 0, len(e))
	for _, d := range e {
		messages = append(messages, d.Message)
	}

	return "Parse error: " + strings.Join(messages, "; ")
}

// Errors filters the error-severity diagnostics out of diags.
func Errors(diags []Diagnostic) ParseErrors {
	var out ParseErrors

	for _, d := range diags {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}

	return out
}
