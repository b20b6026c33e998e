package report

import (
	"github.com/biogo/hts/sam"

	"ab1align/internal/align"
)

// Cigar describes an aligned pair as a SAM CIGAR with the reference as the
// template: '=' identical, 'X' differing (ambiguity matches included),
// 'I' query base over a reference gap, 'D' reference base over a query gap.
// Columns that are gaps on both sides are skipped.
func Cigar(alignedRef, alignedQuery string, gap byte) sam.Cigar {
	if gap == 0 {
		gap = align.Gap
	}
	n := len(alignedRef)
	if len(alignedQuery) < n {
		n = len(alignedQuery)
	}
	var (
		c   sam.Cigar
		cur sam.CigarOpType
		run int
	)
	for i := 0; i < n; i++ {
		r, q := alignedRef[i], alignedQuery[i]
		var t sam.CigarOpType
		switch {
		case r == gap && q == gap:
			continue
		case r == gap:
			t = sam.CigarInsertion
		case q == gap:
			t = sam.CigarDeletion
		case r == q:
			t = sam.CigarEqual
		default:
			t = sam.CigarMismatch
		}
		if run > 0 && t != cur {
			c = append(c, sam.NewCigarOp(cur, run))
			run = 0
		}
		cur = t
		run++
	}
	if run > 0 {
		c = append(c, sam.NewCigarOp(cur, run))
	}
	return c
}
