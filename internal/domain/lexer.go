// Package domain contains the codon pipeline: lexing genome text, executing
// it on the stack VM, mutating genomes and the workflows the CLI drives.
package domain

import (
	"fmt"

	"helix.dev/pkg/helix/internal/domain/codons"
	m "helix.dev/pkg/helix/internal/model"
)

// Lexer turns genome text into tokens and validates its structure.
type Lexer interface {
	Tokenize(text string) []m.Token
	ValidateStructure(tokens []m.Token) []m.Diagnostic
	ValidateFrame(text string) []m.Diagnostic
	Parse(text string) ([]m.Token, []m.Diagnostic, error)
}

type lexer struct{}

// NewLexer creates a new Lexer instance.
func NewLexer() Lexer {
	return &lexer{}
}

// Tokenize returns one token per complete codon. The codon following a PUSH
// becomes a literal carrying its intrinsic value; unknown codons yield a
// best-effort token with OpInvalid that ValidateStructure reports.
func (l *lexer) Tokenize(text string) []m.Token {
	bases, lines := codons.CleanLines(text)
	chunks := codons.Split(bases, false)
	tokens := make([]m.Token, 0, len(chunks))
	expectLiteral := false

	for i, chunk := range chunks {
		sourceIndex := i * codons.Length
		token := m.Token{
			Codon:       m.Codon(chunk),
			SourceIndex: sourceIndex,
			Line:        lines[sourceIndex],
		}

		if expectLiteral {
			expectLiteral = false
			token.Literal = true

			if codons.IsBaseSequence(chunk) {
				token.Value = codons.LiteralValueOf(token.Codon)
			}

			tokens = append(tokens, token)

			continue
		}

		if op, ok := codons.OpcodeOf(token.Codon); ok {
			token.Opcode = op
			expectLiteral = op == m.OpPush
		}

		tokens = append(tokens, token)
	}

	return tokens
}

// ValidateStructure reports a missing START, a missing STOP and every
// unrecognized codon.
func (l *lexer) ValidateStructure(tokens []m.Token) []m.Diagnostic {
	var diags []m.Diagnostic

	first := -1

	for i, token := range tokens {
		if !token.Literal {
			first = i
			break
		}
	}

	switch {
	case first < 0:
		diags = append(diags, m.ParseError("Program must start with START codon (ATG)", 0))
	case tokens[first].Opcode != m.OpStart:
		diags = append(diags, m.ParseError(
			fmt.Sprintf("Program must start with START codon (ATG), found %s", tokens[first].Codon),
			tokens[first].SourceIndex,
		))
	}

	hasStop := false

	for _, token := range tokens {
		if !token.Literal && token.Opcode == m.OpStop {
			hasStop = true
			break
		}
	}

	if !hasStop {
		end := 0
		if len(tokens) > 0 {
			last := tokens[len(tokens)-1]
			end = last.SourceIndex + codons.Length
		}

		diags = append(diags, m.ParseError("Program must end with STOP codon (TAA, TAG, or TGA)", end))
	}

	for _, token := range tokens {
		if token.Literal && codons.IsBaseSequence(string(token.Codon)) {
			continue
		}

		if !token.Literal && token.Opcode.Valid() {
			continue
		}

		diags = append(diags, m.ParseError(
			fmt.Sprintf("Unknown codon '%s' on line %d", token.Codon, token.Line),
			token.SourceIndex,
		))
	}

	return diags
}

// ValidateFrame warns when the cleaned base count is not a multiple of three.
func (l *lexer) ValidateFrame(text string) []m.Diagnostic {
	bases := codons.Clean(text)

	remainder := len(bases) % codons.Length
	if remainder == 0 {
		return nil
	}

	return []m.Diagnostic{m.ParseWarning(
		fmt.Sprintf("Reading frame misaligned: %d bases is not a multiple of 3 (%d trailing base(s) ignored)", len(bases), remainder),
		len(bases)-remainder,
	)}
}

// Parse tokenizes and validates text. The returned error is a m.ParseErrors
// when any error-severity diagnostic was produced.
func (l *lexer) Parse(text string) ([]m.Token, []m.Diagnostic, error) {
	tokens := l.Tokenize(text)

	diags := l.ValidateFrame(text)
	diags = append(diags, l.ValidateStructure(tokens)...)

	if errs := m.Errors(diags); len(errs) > 0 {
		return tokens, diags, errs
	}

	return tokens, diags, nil
}
