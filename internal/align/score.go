package align

import "fmt"

// Rescore computes the score of an existing alignment under p.
// Consecutive gap columns on the same side form one gap costed by GapCost; a
// gap that switches sides opens a new one.
func Rescore(p Policy, m Matcher, gap byte, alignedRef, alignedQuery string) (float64, error) {
	if len(alignedRef) != len(alignedQuery) {
		return 0, fmt.Errorf("aligned lengths differ: %d vs %d", len(alignedRef), len(alignedQuery))
	}
	if m == nil {
		m = exact{}
	}
	var (
		score float64
		side  = stDiag // side of the open gap run
		run   int
	)
	closeRun := func() {
		score += p.GapCost(run)
		run = 0
	}
	for i := 0; i < len(alignedRef); i++ {
		r, q := alignedRef[i], alignedQuery[i]
		cur := stDiag
		switch {
		case r == gap && q == gap:
			return 0, fmt.Errorf("column %d is gapped on both sides", i+1)
		case q == gap:
			cur = stDel
		case r == gap:
			cur = stIns
		}
		if cur != side {
			closeRun()
			side = cur
		}
		if cur != stDiag {
			run++
			continue
		}
		if m.Matches(r, q) {
			score += p.Match
		} else {
			score += p.Mismatch
		}
	}
	closeRun()
	return score, nil
}
