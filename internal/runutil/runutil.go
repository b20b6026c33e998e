// internal/runutil/runutil.go
package runutil

import (
	"fmt"
	"runtime"
)

// EffectiveThreads returns the worker count for jobs inputs. threads <= 0
// means one per CPU; the result never exceeds jobs and is at least 1.
func EffectiveThreads(threads, jobs int) int {
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	if jobs > 0 && threads > jobs {
		threads = jobs
	}
	if threads < 1 {
		threads = 1
	}
	return threads
}

// ValidateLimits reports limit combinations that are legal but likely
// unintended. Rules:
//   - both limits 0: nothing bounds memory use
//   - max-cells too small to align a max-length read against a single base
//
// Each alignment cell costs one traceback byte.
func ValidateLimits(maxLen, maxCells int) []string {
	var warns []string
	if maxLen == 0 && maxCells == 0 {
		warns = append(warns, "--max-length and --max-cells are both 0; alignment memory is unbounded")
		return warns
	}
	if maxLen > 0 && maxCells > 0 {
		if need := 2 * (maxLen + 1); maxCells < need {
			warns = append(warns, fmt.Sprintf(
				"--max-cells %d is below %d; sequences near --max-length %d will always be rejected", maxCells, need, maxLen))
		}
	}
	return warns
}
