package codons

import (
	"strings"
	"unicode"
)

const (
	// CommentMarker starts a comment running to the end of the line.
	CommentMarker = ';'
	// Length is the number of bases in a codon.
	Length = 3
)

// CleanLines strips comments and whitespace from genome text, upper-cases it
// and rewrites U as T. lines[i] is the 1-based source line of byte i of the
// returned bases.
func CleanLines(text string) (bases string, lines []int) {
	var b strings.Builder

	lines = make([]int, 0, len(text))

	for lineNo, line := range strings.Split(text, "\n") {
		if i := strings.IndexByte(line, CommentMarker); i >= 0 {
			line = line[:i]
		}

		for _, r := range line {
			if unicode.IsSpace(r) {
				continue
			}

			r = unicode.ToUpper(r)
			if r == 'U' {
				r = 'T'
			}

			b.WriteRune(r)

			for range len(string(r)) {
				lines = append(lines, lineNo+1)
			}
		}
	}

	return b.String(), lines
}

// Clean is CleanLines without the line table.
func Clean(text string) string {
	bases, _ := CleanLines(text)
	return bases
}

// Split chunks cleaned bases into codons. A trailing partial chunk is kept
// only when keepPartial is set.
func Split(bases string, keepPartial bool) []string {
	out := make([]string, 0, len(bases)/Length+1)

	for i := 0; i < len(bases); i += Length {
		end := i + Length
		if end > len(bases) {
			if keepPartial {
				out = append(out, bases[i:])
			}

			break
		}

		out = append(out, bases[i:end])
	}

	return out
}

// Join renders codons as space-separated genome text.
func Join(chunks []string) string {
	return strings.Join(chunks, " ")
}

// IsBaseSequence reports whether s consists only of A, C, G and T.
func IsBaseSequence(s string) bool {
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(Bases, s[i]) < 0 {
			return false
		}
	}

	return true
}
