// internal/ingest/ingest.go
package ingest

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Record is one input sequence, upper-cased and validated.
type Record struct {
	ID  string
	Seq []byte
}

// Format names an input file type.
type Format string

const (
	FormatFASTA Format = "fasta"
	FormatABIF  Format = "abif"
)

// maxABIFBytes caps how much of a chromatogram is read into memory.
const maxABIFBytes = 64 << 20

// uploadExts are the extensions accepted from the upload form.
var uploadExts = map[string]bool{"ab1": true, "fasta": true, "fa": true}

// AllowedUpload reports whether name carries an accepted upload extension.
func AllowedUpload(name string) bool {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return false
	}
	return uploadExts[strings.ToLower(name[i+1:])]
}

// DetectFormat picks a Format from the file extension. "-" is FASTA.
func DetectFormat(path string) (Format, error) {
	if path == "-" {
		return FormatFASTA, nil
	}
	ext := strings.ToLower(filepath.Ext(strings.TrimSuffix(strings.ToLower(path), ".gz")))
	switch ext {
	case ".ab1", ".abi", ".abif":
		return FormatABIF, nil
	case ".fa", ".fasta", ".fas", ".fna", ".fsa":
		return FormatFASTA, nil
	}
	return "", fmt.Errorf("%w %q (want .ab1, .fasta or .fa)", ErrUnknownFormat, filepath.Ext(path))
}

// ReadTrace reads the query read: an ABIF chromatogram or a FASTA record.
func ReadTrace(path string) (Record, error) {
	f, err := DetectFormat(path)
	if err != nil {
		return Record{}, &InputIngestionError{Path: path, Err: err}
	}
	return Read(path, f)
}

// ReadReference reads the first record of a FASTA file.
func ReadReference(path string) (Record, error) {
	return Read(path, FormatFASTA)
}

// Read parses path as f and validates the resulting sequence.
// Every failure is an *InputIngestionError.
func Read(path string, f Format) (Record, error) {
	fail := func(err error) (Record, error) {
		return Record{}, &InputIngestionError{Path: path, Format: f, Err: err}
	}
	rc, err := openReader(path)
	if err != nil {
		return fail(err)
	}
	defer rc.Close()

	var rec Record
	switch f {
	case FormatFASTA:
		rec, err = readFASTA(rc)
	case FormatABIF:
		var data []byte
		data, err = io.ReadAll(io.LimitReader(rc, maxABIFBytes+1))
		if err == nil && len(data) > maxABIFBytes {
			err = fmt.Errorf("chromatogram larger than %d bytes", maxABIFBytes)
		}
		if err == nil {
			rec, err = parseABIF(data)
		}
	default:
		err = fmt.Errorf("%w %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return fail(err)
	}
	if rec.ID == "" {
		rec.ID = defaultID(path)
	}
	if rec.Seq, err = Normalize(rec.Seq); err != nil {
		return fail(err)
	}
	return rec, nil
}

func defaultID(path string) string {
	if path == "-" {
		return "stdin"
	}
	base := filepath.Base(strings.TrimSuffix(path, ".gz"))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
