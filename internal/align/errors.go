package align

import "fmt"

// InvalidScoringPolicyError is returned before alignment starts when a
// scoring parameter is not a finite number.
type InvalidScoringPolicyError struct {
	Field string
	Value float64
}

func (e *InvalidScoringPolicyError) Error() string {
	return fmt.Sprintf("invalid scoring policy: %s = %v (must be finite)", e.Field, e.Value)
}

// AlignmentComputationError reports that an alignment could not be computed,
// e.g. because the dynamic-programming matrix exceeds the cell budget.
type AlignmentComputationError struct {
	RefLen   int
	QueryLen int
	Reason   string
}

func (e *AlignmentComputationError) Error() string {
	return fmt.Sprintf("alignment of %d x %d symbols failed: %s", e.RefLen, e.QueryLen, e.Reason)
}
