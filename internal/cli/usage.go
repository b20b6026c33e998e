// internal/cli/usage.go
package cli

import (
	"flag"
	"fmt"
	"io"

	"ab1align/internal/version"
)

// UsageCommon installs a grouped Usage() handler on fs.
// extra prints tool-specific sections before the shared scoring/report blocks.
func UsageCommon(fs *flag.FlagSet, name, tagline string, extra func(out io.Writer, def func(string) string)) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		// Header
		fmt.Fprintf(out, "%s – %s\n\n", name, tagline)
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)

		if extra != nil {
			extra(out, def)
		}

		// Shared blocks
		fmt.Fprintln(out, "\nScoring:")
		fmt.Fprintf(out, "      --match float           Score for matching bases, IUPAC-aware [%s]\n", def("match"))
		fmt.Fprintf(out, "      --mismatch float        Score for mismatching bases [%s]\n", def("mismatch"))
		fmt.Fprintf(out, "      --gap-open float        Score for the first column of a gap [%s]\n", def("gap-open"))
		fmt.Fprintf(out, "      --gap-extend float      Score for each further gap column [%s]\n", def("gap-extend"))

		fmt.Fprintln(out, "\nReport:")
		fmt.Fprintf(out, "      --width int             Columns per block [%s]\n", def("width"))
		fmt.Fprintf(out, "      --labels                Prefix lines with Ref/Ab1/Conservation labels [%s]\n", def("labels"))
		fmt.Fprintf(out, "      --artifact-name string  File name of the saved report [%s]\n", def("artifact-name"))

		fmt.Fprintln(out, "\nLimits:")
		fmt.Fprintf(out, "      --max-length int        Reject sequences longer than N (0=unlimited) [%s]\n", def("max-length"))
		fmt.Fprintf(out, "      --max-cells int         Reject alignments needing more DP cells (0=unlimited) [%s]\n", def("max-cells"))

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintln(out, "  -c, --config file           TOML configuration (flags override it)")
		fmt.Fprintf(out, "  -q, --quiet                 Suppress warnings [%s]\n", def("quiet"))
		fmt.Fprintln(out, "  -v, --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
		if fs.Lookup("examples") != nil {
			fmt.Fprintln(out, "      --examples              Show quickstart examples and exit")
		}
	}
}

// InstallAlignUsage sets the ab1align help text.
func InstallAlignUsage(fs *flag.FlagSet) {
	UsageCommon(fs, "ab1align", "align a sequencing trace to a reference", func(out io.Writer, def func(string) string) {
		fmt.Fprintln(out, "Usage:")
		fmt.Fprintln(out, "  ab1align -r ref.fa read.ab1 [more.ab1 ...] [flags]")
		fmt.Fprintln(out, "\nInput:")
		fmt.Fprintln(out, "  -r, --reference file        Reference FASTA or '-' for STDIN [*]")
		fmt.Fprintln(out, "  -i, --trace file            Trace (.ab1 or FASTA); repeatable, or positional [*]")
		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "  -o, --output string         Output: text | json | jsonl [%s]\n", def("output"))
		fmt.Fprintf(out, "      --no-header             Suppress per-trace header lines [%s]\n", def("no-header"))
		fmt.Fprintln(out, "      --save dir              Also save each text report under DIR")
		fmt.Fprintln(out, "      --write-config          Print the effective configuration as TOML and exit")
		fmt.Fprintln(out, "\nPerformance:")
		fmt.Fprintf(out, "  -t, --threads int           Worker threads for multiple traces (0=all CPUs) [%s]\n", def("threads"))
	})
}

// InstallServeUsage sets the ab1align-serve help text.
func InstallServeUsage(fs *flag.FlagSet) {
	UsageCommon(fs, "ab1align-serve", "upload form for trace alignment", func(out io.Writer, def func(string) string) {
		fmt.Fprintln(out, "Usage:")
		fmt.Fprintln(out, "  ab1align-serve [--addr host:port] [flags]")
		fmt.Fprintln(out, "\nServer:")
		fmt.Fprintf(out, "      --addr string           Listen address [%s]\n", def("addr"))
		fmt.Fprintf(out, "      --upload-dir dir        Directory for uploaded files [%s]\n", def("upload-dir"))
		fmt.Fprintf(out, "      --results-dir dir       Directory for saved reports [%s]\n", def("results-dir"))
		fmt.Fprintf(out, "      --max-upload int        Maximum request body in bytes [%s]\n", def("max-upload"))
	})
}
