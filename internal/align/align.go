// internal/align/align.go
package align

import (
	"math"
)

// Gap is the default gap marker written into aligned sequences.
const Gap byte = '-'

// Matcher decides whether two symbols score as a match.
type Matcher interface {
	Matches(a, b byte) bool
}

// exact is the Matcher used when none is supplied.
type exact struct{}

func (exact) Matches(a, b byte) bool { return a == b }

// Result is one optimal global alignment.
// Reference and Query always have equal length.
type Result struct {
	Reference string
	Query     string
	Score     float64
}

// Aligner computes global alignments with affine gap costs.
// An Aligner holds no per-run state and may be shared between goroutines.
type Aligner struct {
	Policy  Policy
	Matcher Matcher

	// GapChar is written for gap columns; 0 means Gap.
	GapChar byte

	// MaxCells bounds (len(ref)+1)*(len(query)+1). 0 = unlimited.
	MaxCells int
}

// New returns an Aligner scoring with p and deciding matches with m.
func New(p Policy, m Matcher) *Aligner {
	return &Aligner{Policy: p, Matcher: m}
}

// DP states. Pointers are packed two bits per state into one byte per cell:
// bits 0-1 diag, bits 2-3 del, bits 4-5 ins.
type state uint8

const (
	stDiag state = iota // ref symbol over query symbol
	stDel               // ref symbol over gap
	stIns               // gap over query symbol
)

// best3 returns the maximum of three predecessors, preferring the earlier
// argument on ties.
func best3(d, x, y float64) (float64, state) {
	v, s := d, stDiag
	if x > v {
		v, s = x, stDel
	}
	if y > v {
		v, s = y, stIns
	}
	return v, s
}

// Align returns the highest-scoring global alignment of ref and query.
// Empty inputs are valid and align against an all-gap row.
func (a *Aligner) Align(ref, query []byte) (Result, error) {
	p := a.Policy
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	match := a.Matcher
	if match == nil {
		match = exact{}
	}
	gap := a.GapChar
	if gap == 0 {
		gap = Gap
	}

	m, n := len(ref), len(query)
	w := n + 1
	if a.MaxCells > 0 && (m+1) > a.MaxCells/w {
		return Result{}, &AlignmentComputationError{
			RefLen: m, QueryLen: n,
			Reason: "matrix exceeds cell budget",
		}
	}

	negInf := math.Inf(-1)
	open, ext := p.GapOpen, p.GapExtend

	tb := make([]uint8, (m+1)*w)
	prevD, prevX, prevY := make([]float64, w), make([]float64, w), make([]float64, w)
	curD, curX, curY := make([]float64, w), make([]float64, w), make([]float64, w)

	// row 0: only leading insertions are reachable
	prevD[0], prevX[0], prevY[0] = 0, negInf, negInf
	for j := 1; j <= n; j++ {
		prevD[j], prevX[j] = negInf, negInf
		v, s := best3(prevD[j-1]+open, prevX[j-1]+open, prevY[j-1]+ext)
		prevY[j] = v
		tb[j] = uint8(s) << 4
	}

	for i := 1; i <= m; i++ {
		row := i * w
		rc := ref[i-1]

		v, s := best3(prevD[0]+open, prevX[0]+ext, prevY[0]+open)
		curD[0], curX[0], curY[0] = negInf, v, negInf
		tb[row] = uint8(s) << 2

		for j := 1; j <= n; j++ {
			sub := p.Mismatch
			if match.Matches(rc, query[j-1]) {
				sub = p.Match
			}
			dv, ds := best3(prevD[j-1], prevX[j-1], prevY[j-1])
			xv, xs := best3(prevD[j]+open, prevX[j]+ext, prevY[j]+open)
			yv, ys := best3(curD[j-1]+open, curX[j-1]+open, curY[j-1]+ext)
			curD[j], curX[j], curY[j] = dv+sub, xv, yv
			tb[row+j] = uint8(ds) | uint8(xs)<<2 | uint8(ys)<<4
		}
		prevD, curD = curD, prevD
		prevX, curX = curX, prevX
		prevY, curY = curY, prevY
	}

	score, s := best3(prevD[n], prevX[n], prevY[n])

	outR := make([]byte, 0, m+n)
	outQ := make([]byte, 0, m+n)
	i, j := m, n
	for i > 0 || j > 0 {
		c := tb[i*w+j]
		switch s {
		case stDiag:
			outR = append(outR, ref[i-1])
			outQ = append(outQ, query[j-1])
			s = state(c & 3)
			i--
			j--
		case stDel:
			outR = append(outR, ref[i-1])
			outQ = append(outQ, gap)
			s = state(c >> 2 & 3)
			i--
		case stIns:
			outR = append(outR, gap)
			outQ = append(outQ, query[j-1])
			s = state(c >> 4 & 3)
			j--
		}
	}
	reverse(outR)
	reverse(outQ)

	return Result{Reference: string(outR), Query: string(outQ), Score: score}, nil
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
