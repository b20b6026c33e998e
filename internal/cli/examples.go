// internal/cli/examples.go
package cli

import (
	"errors"
	"fmt"
	"io"
)

// ErrPrintedAndExitOK is returned by ParseArgs when the caller requested examples.
// Apps should catch this and exit 0 after printing examples.
var ErrPrintedAndExitOK = errors.New("examples requested")

// PrintExamples prints a small quickstart header and body, followed by a
// one-line tip to discover full help.
func PrintExamples(out io.Writer, name string, body func(io.Writer)) {
	if out == nil {
		return
	}
	_, _ = fmt.Fprintf(out, "%s quickstart\n\n", name)
	if body != nil {
		body(out)
	}
	_, _ = fmt.Fprintln(out, "\nTip: run with --help for all flags.")
}

// PrintAlignExamples prints the ab1align quickstart.
func PrintAlignExamples(out io.Writer) {
	PrintExamples(out, "ab1align", func(w io.Writer) {
		fmt.Fprintln(w, "  # align one Sanger read to its reference")
		fmt.Fprintln(w, "  ab1align -r ref.fa sample.ab1")
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "  # a plate of reads, 8 workers, JSON Lines")
		fmt.Fprintln(w, "  ab1align -r ref.fa -t 8 -o jsonl plate/*.ab1")
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "  # the classic labelled report, saved next to the output")
		fmt.Fprintln(w, "  ab1align -r ref.fa --labels --save results sample.ab1")
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "  # stricter gaps from a config file, overriding one value")
		fmt.Fprintln(w, "  ab1align --write-config > ab1align.toml")
		fmt.Fprintln(w, "  ab1align -c ab1align.toml --gap-open -3 -r ref.fa sample.ab1")
	})
}
