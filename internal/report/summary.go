package report

import "ab1align/internal/align"

// Summary counts alignment columns by kind.
type Summary struct {
	Columns    int     `json:"columns"`
	Identical  int     `json:"identical"` // literal, non-gap
	Matches    int     `json:"matches"`   // includes ambiguity matches
	Mismatches int     `json:"mismatches"`
	RefGaps    int     `json:"ref_gaps"`
	QueryGaps  int     `json:"query_gaps"`
	Identity   float64 `json:"identity"` // Identical / Columns
}

// Summarize tallies an aligned pair. m decides ambiguity-aware matches.
func Summarize(alignedRef, alignedQuery string, m align.Matcher, gap byte) Summary {
	if gap == 0 {
		gap = align.Gap
	}
	n := len(alignedRef)
	if len(alignedQuery) < n {
		n = len(alignedQuery)
	}
	s := Summary{Columns: n}
	for i := 0; i < n; i++ {
		r, q := alignedRef[i], alignedQuery[i]
		switch {
		case r == gap:
			s.RefGaps++
		case q == gap:
			s.QueryGaps++
		case r == q:
			s.Identical++
			s.Matches++
		case m != nil && m.Matches(r, q):
			s.Matches++
		default:
			s.Mismatches++
		}
	}
	if n > 0 {
		s.Identity = float64(s.Identical) / float64(n)
	}
	return s
}
