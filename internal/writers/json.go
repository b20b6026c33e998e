package writers

import (
	"encoding/json"
	"io"

	"ab1align/pkg/api"
)

func init() {
	Register("json", writeJSON)
	Register("jsonl", writeJSONL)
}

// writeJSON writes recs as one indented JSON array.
func writeJSON(w io.Writer, recs []api.AlignmentV1, _ Options) error {
	if recs == nil {
		recs = []api.AlignmentV1{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(recs)
}

// writeJSONL writes one compact JSON object per line.
func writeJSONL(w io.Writer, recs []api.AlignmentV1, _ Options) error {
	enc := json.NewEncoder(w)
	for _, r := range recs {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
