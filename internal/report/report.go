// internal/report/report.go
package report

import (
	"fmt"
	"strings"
)

// Labels are optional prefixes for the three lines of a block.
type Labels struct {
	Reference    string
	Query        string
	Conservation string
}

// ClassicLabels reproduces the labelled layout of the upload UI.
var ClassicLabels = Labels{
	Reference:    "Ref sequence  - ",
	Query:        "Ab1 Sequence  - ",
	Conservation: "Conservation  - ",
}

// Options control the block layout.
type Options struct {
	// Columns per block. If <=0, use default (60).
	Width int

	// Line prefixes; zero value prints bare sequence lines.
	Labels Labels

	// Glyphs
	GapChar       byte   // default '-'
	ConservedMark string // default "*"
	VariableMark  string // default " "
}

// DefaultOptions is the plain 60-column layout.
var DefaultOptions = Options{
	Width:         60,
	GapChar:       '-',
	ConservedMark: "*",
	VariableMark:  " ",
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultOptions.Width
	}
	if o.GapChar == 0 {
		o.GapChar = DefaultOptions.GapChar
	}
	if o.ConservedMark == "" {
		o.ConservedMark = DefaultOptions.ConservedMark
	}
	if o.VariableMark == "" {
		o.VariableMark = DefaultOptions.VariableMark
	}
	return o
}

// Format renders an aligned pair with DefaultOptions.
func Format(alignedRef, alignedQuery string) (string, error) {
	return FormatWithOptions(alignedRef, alignedQuery, DefaultOptions)
}

// FormatWithOptions splits the aligned pair into Width-column blocks of
// reference, query and conservation lines, separated by blank lines.
// Trailing blank lines are dropped; the last conservation line keeps its width.
func FormatWithOptions(alignedRef, alignedQuery string, opt Options) (string, error) {
	if len(alignedRef) != len(alignedQuery) {
		return "", fmt.Errorf("aligned sequences differ in length: %d vs %d", len(alignedRef), len(alignedQuery))
	}
	opt = opt.withDefaults()

	var b strings.Builder
	for off := 0; off < len(alignedRef); off += opt.Width {
		end := off + opt.Width
		if end > len(alignedRef) {
			end = len(alignedRef)
		}
		r, q := alignedRef[off:end], alignedQuery[off:end]
		fmt.Fprintf(&b, "%s%s\n", opt.Labels.Reference, r)
		fmt.Fprintf(&b, "%s%s\n", opt.Labels.Query, q)
		fmt.Fprintf(&b, "%s%s\n\n", opt.Labels.Conservation, Conservation(r, q, opt))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// Conservation marks columns whose symbols are literally identical and not
// gaps. Ambiguity codes are not expanded here.
func Conservation(r, q string, opt Options) string {
	opt = opt.withDefaults()
	n := len(r)
	if len(q) < n {
		n = len(q)
	}
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		if r[i] == q[i] && r[i] != opt.GapChar {
			b.WriteString(opt.ConservedMark)
		} else {
			b.WriteString(opt.VariableMark)
		}
	}
	return b.String()
}
