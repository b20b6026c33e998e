package align

import "math"

// Policy holds the scoring parameters of one alignment run.
// Gap penalties are negative-valued costs.
type Policy struct {
	Match     float64 `toml:"match" json:"match"`
	Mismatch  float64 `toml:"mismatch" json:"mismatch"`
	GapOpen   float64 `toml:"gap_open" json:"gap_open"`
	GapExtend float64 `toml:"gap_extend" json:"gap_extend"`
}

// DefaultPolicy is the reference scoring: +2 / -1 / -0.5 / -0.1.
var DefaultPolicy = Policy{
	Match:     2,
	Mismatch:  -1,
	GapOpen:   -0.5,
	GapExtend: -0.1,
}

// Validate rejects parameters that are not finite numbers. The usual ordering
// (match > 0 > mismatch, gap penalties <= 0) is not enforced.
func (p Policy) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"match", p.Match},
		{"mismatch", p.Mismatch},
		{"gap_open", p.GapOpen},
		{"gap_extend", p.GapExtend},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return &InvalidScoringPolicyError{Field: f.name, Value: f.v}
		}
	}
	return nil
}

// GapCost returns the total score contribution of a gap of length k.
func (p Policy) GapCost(k int) float64 {
	if k <= 0 {
		return 0
	}
	return p.GapOpen + float64(k-1)*p.GapExtend
}
