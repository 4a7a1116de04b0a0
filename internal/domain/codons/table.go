// Package codons holds the static codon table: which opcode every one of the
// 64 codons decodes to, and the numeric value a codon carries when it is used
// as a PUSH literal.
package codons

import (
	"fmt"
	"strings"

	m "helix.dev/pkg/helix/internal/model"
)

// Bases lists the four DNA bases in literal-digit order (A=0, C=1, G=2, T=3).
const Bases = "ACGT"

// StartCodon is the only codon decoding to START.
const StartCodon m.Codon = "ATG"

// CanonicalStop is the STOP codon used by nonsense mutations.
const CanonicalStop m.Codon = "TAA"

var table = map[m.Codon]m.Opcode{
	"ATG": m.OpStart,
	"TAA": m.OpStop, "TAG": m.OpStop, "TGA": m.OpStop,

	"GAA": m.OpPush, "GAC": m.OpPush, "GAG": m.OpPush, "GAT": m.OpPush,
	"ATA": m.OpDup, "ATC": m.OpDup, "ATT": m.OpDup,
	"TAC": m.OpPop, "TAT": m.OpPop,
	"TGG": m.OpSwap, "TGT": m.OpSwap,
	"CTA": m.OpNop, "TGC": m.OpNop,

	"CTG": m.OpAdd,
	"CTT": m.OpSub,
	"CAG": m.OpMul,
	"CAT": m.OpDiv,
	"CAC": m.OpEq,
	"CTC": m.OpLt,
	"CAA": m.OpLoop,

	"TCA": m.OpSaveState, "TCC": m.OpSaveState,
	"TCG": m.OpRestoreState, "TCT": m.OpRestoreState,

	"ACA": m.OpTranslate, "ACC": m.OpTranslate, "ACG": m.OpTranslate, "ACT": m.OpTranslate,
	"AGA": m.OpRotate, "AGC": m.OpRotate, "AGG": m.OpRotate, "AGT": m.OpRotate,
	"CGA": m.OpScale, "CGC": m.OpScale, "CGG": m.OpScale, "CGT": m.OpScale,
	"TTA": m.OpColor, "TTC": m.OpColor, "TTG": m.OpColor, "TTT": m.OpColor,

	"GGA": m.OpCircle, "GGC": m.OpCircle, "GGG": m.OpCircle, "GGT": m.OpCircle,
	"CCA": m.OpRect, "CCC": m.OpRect, "CCG": m.OpRect, "CCT": m.OpRect,
	"AAA": m.OpLine, "AAC": m.OpLine, "AAG": m.OpLine, "AAT": m.OpLine,
	"GCA": m.OpTriangle, "GCC": m.OpTriangle, "GCG": m.OpTriangle, "GCT": m.OpTriangle,
	"GTA": m.OpEllipse, "GTC": m.OpEllipse, "GTG": m.OpEllipse, "GTT": m.OpEllipse,
}

// byOpcode is the inverse index, codons sorted alphabetically per opcode.
var byOpcode map[m.Opcode][]m.Codon

// all holds the 64 codons in literal-value order.
var all []m.Codon

func init() {
	all = make([]m.Codon, 0, len(Bases)*len(Bases)*len(Bases))
	for _, a := range Bases {
		for _, b := range Bases {
			for _, c := range Bases {
				all = append(all, m.Codon([]rune{a, b, c}))
			}
		}
	}

	byOpcode = make(map[m.Opcode][]m.Codon)

	for _, codon := range all {
		op, ok := table[codon]
		if !ok {
			panic(fmt.Sprintf("codons: no opcode for %s", codon))
		}

		byOpcode[op] = append(byOpcode[op], codon)
	}

	if len(table) != len(all) {
		panic(fmt.Sprintf("codons: table has %d entries, want %d", len(table), len(all)))
	}
}

// Normalize upper-cases a codon and rewrites U as T.
func Normalize(codon string) m.Codon {
	return m.Codon(strings.ReplaceAll(strings.ToUpper(codon), "U", "T"))
}

// OpcodeOf returns the opcode a codon decodes to.
func OpcodeOf(codon m.Codon) (m.Opcode, bool) {
	op, ok := table[Normalize(string(codon))]
	return op, ok
}

// LiteralValueOf returns the positional base-4 value of a codon, 0..63.
// The codon must already be known to consist of valid bases.
func LiteralValueOf(codon m.Codon) int {
	normalized := Normalize(string(codon))
	value := 0

	for i := 0; i < len(normalized) && i < 3; i++ {
		value = value*4 + baseDigit(normalized[i])
	}

	return value
}

func baseDigit(b byte) int {
	if i := strings.IndexByte(Bases, b); i >= 0 {
		return i
	}

	return 0
}

// CodonsForOpcode returns every codon that decodes to op.
func CodonsForOpcode(op m.Opcode) []m.Codon {
	codons := byOpcode[op]
	out := make([]m.Codon, len(codons))
	copy(out, codons)

	return out
}

// Synonyms returns the codons sharing codon's opcode, excluding codon itself.
func Synonyms(codon m.Codon) []m.Codon {
	normalized := Normalize(string(codon))

	op, ok := table[normalized]
	if !ok {
		return nil
	}

	var out []m.Codon

	for _, c := range byOpcode[op] {
		if c != normalized {
			out = append(out, c)
		}
	}

	return out
}

// IsStopCodon reports whether codon decodes to STOP.
func IsStopCodon(codon m.Codon) bool {
	op, ok := OpcodeOf(codon)
	return ok && op == m.OpStop
}

// IsStartCodon reports whether codon decodes to START.
func IsStartCodon(codon m.Codon) bool {
	op, ok := OpcodeOf(codon)
	return ok && op == m.OpStart
}

// All returns the 64 codons ordered by literal value.
func All() []m.Codon {
	out := make([]m.Codon, len(all))
	copy(out, all)

	return out
}
