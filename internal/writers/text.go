package writers

import (
	"fmt"
	"io"

	"ab1align/pkg/api"
)

func init() { Register("text", writeText) }

// writeText prints each report block, optionally preceded by a "# " header
// naming the trace and its score. Records are separated by a blank line.
func writeText(w io.Writer, recs []api.AlignmentV1, opt Options) error {
	for i, r := range recs {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if r.Error != "" {
			if _, err := fmt.Fprintf(w, "# %s\terror: %s\n", traceName(r), r.Error); err != nil {
				return err
			}
			continue
		}
		if opt.Header {
			if _, err := fmt.Fprintf(w, "# %s vs %s\tscore: %.2f\tidentity: %.1f%%\n",
				traceName(r), r.ReferenceID, r.Score, 100*r.Summary.Identity); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, r.Report); err != nil {
			return err
		}
	}
	return nil
}

func traceName(r api.AlignmentV1) string {
	switch {
	case r.TraceID != "" && r.TraceFile != "":
		return fmt.Sprintf("%s (%s)", r.TraceID, r.TraceFile)
	case r.TraceID != "":
		return r.TraceID
	default:
		return r.TraceFile
	}
}
