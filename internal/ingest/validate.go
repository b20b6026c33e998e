package ingest

import (
	"github.com/biogo/biogo/alphabet"
)

// Normalize upper-cases seq in place and rejects symbols outside the
// redundant DNA alphabet (ACGT and IUPAC codes). Whitespace and gap symbols
// are dropped, so pre-aligned input is read ungapped.
func Normalize(seq []byte) ([]byte, error) {
	gap := byte(alphabet.DNAredundant.Gap())
	out := seq[:0]
	for i, c := range seq {
		switch c {
		case ' ', '\t', '\r', '\n', gap:
			continue
		}
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if !valid(c) {
			return nil, &InvalidSymbolError{Pos: i + 1, Symbol: seq[i]}
		}
		out = append(out, c)
	}
	return out, nil
}

// valid checks c in both cases so the result does not depend on whether the
// alphabet is cased.
func valid(upper byte) bool {
	a := alphabet.DNAredundant
	if a.IsValid(alphabet.Letter(upper)) {
		return true
	}
	return upper >= 'A' && upper <= 'Z' && a.IsValid(alphabet.Letter(upper+('a'-'A')))
}
