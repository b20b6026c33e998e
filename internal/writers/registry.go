// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"ab1align/pkg/api"
)

// Options are shared by every format.
type Options struct {
	Header bool // per-record header line (text only)
}

// WriteFunc serializes a batch of records.
type WriteFunc func(w io.Writer, recs []api.AlignmentV1, opt Options) error

// Writers maps a format name to its handler. Register in init() blocks.
var Writers = map[string]WriteFunc{}

// Register adds a format (idempotent, last wins).
func Register(format string, fn WriteFunc) { Writers[format] = fn }

// Formats lists the registered format names, sorted.
func Formats() []string {
	out := make([]string, 0, len(Writers))
	for k := range Writers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Write dispatches to the handler registered for format.
func Write(format string, w io.Writer, recs []api.AlignmentV1, opt Options) error {
	fn, ok := Writers[format]
	if !ok {
		return fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return fn(w, recs, opt)
}
