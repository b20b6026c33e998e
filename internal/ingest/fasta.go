package ingest

import (
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// readFASTA returns the only record of a FASTA stream. A second record is an
// error rather than being dropped.
func readFASTA(r io.Reader) (Record, error) {
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNAredundant)))
	if !sc.Next() {
		if err := sc.Error(); err != nil {
			return Record{}, err
		}
		return Record{}, ErrNoRecords
	}
	s, ok := sc.Seq().(*linear.Seq)
	if !ok {
		return Record{}, ErrNoRecords
	}
	seq := make([]byte, len(s.Seq))
	for i, l := range s.Seq {
		seq[i] = byte(l)
	}
	rec := Record{ID: s.Name(), Seq: seq}
	if sc.Next() {
		return Record{}, fmt.Errorf("%w: found %q after %q", ErrExtraRecords, sc.Seq().Name(), rec.ID)
	}
	if err := sc.Error(); err != nil {
		return Record{}, err
	}
	return rec, nil
}
