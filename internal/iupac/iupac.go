// internal/iupac/iupac.go
package iupac

import "fmt"

// Table maps an ambiguity letter to the concrete bases it stands for.
type Table map[byte]string

// Default returns a fresh copy of the standard nucleotide ambiguity table.
// Example: R = {A,G}, N = {A,C,G,T}.
func Default() Table {
	return Table{
		'R': "AG", 'Y': "CT", 'S': "GC", 'W': "AT",
		'K': "GT", 'M': "AC", 'B': "CGT", 'D': "AGT",
		'H': "ACT", 'V': "ACG", 'N': "ACGT",
	}
}

/* -------------------------- concrete base bits -------------------------- */

// bit0=A bit1=C bit2=G bit3=T; zero for anything that is not a concrete base.
var baseBits = [256]uint8{'A': 1, 'C': 2, 'G': 4, 'T': 8}

// Resolver answers "do these two symbols match?" for one Table.
// It is immutable after construction and safe for concurrent use.
type Resolver struct {
	expand [256]uint8 // ambiguity letter -> concrete base bits
}

// NewResolver validates t and compiles it into a lookup table.
// Every key must expand to a non-empty subset of {A,C,G,T}.
func NewResolver(t Table) (*Resolver, error) {
	r := &Resolver{}
	for k, bases := range t {
		if bases == "" {
			return nil, fmt.Errorf("iupac: code %q has an empty expansion", k)
		}
		var m uint8
		for i := 0; i < len(bases); i++ {
			b := baseBits[bases[i]]
			if b == 0 {
				return nil, fmt.Errorf("iupac: code %q expands to non-base %q", k, bases[i])
			}
			m |= b
		}
		r.expand[k] = m
	}
	return r, nil
}

// MustResolver is NewResolver for tables known to be valid.
func MustResolver(t Table) *Resolver {
	r, err := NewResolver(t)
	if err != nil {
		panic(err)
	}
	return r
}

// Matches reports whether a and b are equivalent under single-level ambiguity
// expansion: identical symbols, or an ambiguity code on either side that covers
// the concrete base on the other. Two different ambiguity codes never match.
func (r *Resolver) Matches(a, b byte) bool {
	if a == b {
		return true
	}
	if r.expand[a]&baseBits[b] != 0 {
		return true
	}
	return r.expand[b]&baseBits[a] != 0
}

// Ambiguous reports whether c is a key of the resolver's table.
func (r *Resolver) Ambiguous(c byte) bool { return r.expand[c] != 0 }
