package ingest

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// ABIF layout: a 4-byte "ABIF" magic, a 2-byte version, then one 28-byte
// directory entry pointing at the tag directory. All integers are big-endian.
// Tags whose payload fits in 4 bytes store it inline in the offset field.
const (
	abifMagic     = "ABIF"
	abifEntrySize = 28
	abifRootAt    = 6

	abifTypePString = 18
	abifTypeCString = 19
)

type abifEntry struct {
	Name        string
	Number      int32
	ElemType    int16
	ElemSize    int16
	NumElements int32
	DataSize    int32
	DataOffset  int32
}

func decodeABIFEntry(b []byte) abifEntry {
	be := binary.BigEndian
	return abifEntry{
		Name:        string(b[0:4]),
		Number:      int32(be.Uint32(b[4:8])),
		ElemType:    int16(be.Uint16(b[8:10])),
		ElemSize:    int16(be.Uint16(b[10:12])),
		NumElements: int32(be.Uint32(b[12:16])),
		DataSize:    int32(be.Uint32(b[16:20])),
		DataOffset:  int32(be.Uint32(b[20:24])),
	}
}

type abifTag struct {
	Type int16
	Data []byte
}

// parseABIF extracts the called bases (PBAS2, else PBAS1) and the sample
// name (SMPL1) from an in-memory ABIF file.
func parseABIF(data []byte) (Record, error) {
	if len(data) < abifRootAt+abifEntrySize || string(data[:4]) != abifMagic {
		return Record{}, ErrNotABIF
	}
	root := decodeABIFEntry(data[abifRootAt : abifRootAt+abifEntrySize])
	dirOff, count := int(root.DataOffset), int(root.NumElements)
	if dirOff < 0 || count < 0 || dirOff+count*abifEntrySize > len(data) {
		return Record{}, fmt.Errorf("tag directory: %w", ErrTruncatedRecord)
	}

	tags := make(map[string]abifTag, count)
	for i := 0; i < count; i++ {
		at := dirOff + i*abifEntrySize
		e := decodeABIFEntry(data[at : at+abifEntrySize])
		size := int(e.DataSize)
		if size < 0 {
			return Record{}, fmt.Errorf("tag %s%d: %w", e.Name, e.Number, ErrTruncatedRecord)
		}
		var raw []byte
		if size <= 4 {
			raw = data[at+20 : at+20+size]
		} else {
			off := int(e.DataOffset)
			if off < 0 || off+size > len(data) {
				return Record{}, fmt.Errorf("tag %s%d: %w", e.Name, e.Number, ErrTruncatedRecord)
			}
			raw = data[off : off+size]
		}
		tags[fmt.Sprintf("%s%d", e.Name, e.Number)] = abifTag{Type: e.ElemType, Data: raw}
	}

	pbas, ok := tags["PBAS2"]
	if !ok {
		pbas, ok = tags["PBAS1"]
	}
	if !ok {
		return Record{}, ErrNoBaseCalls
	}
	rec := Record{Seq: bytes.TrimRight(bytes.Clone(pbas.Data), "\x00")}
	if smpl, ok := tags["SMPL1"]; ok {
		rec.ID = abifString(smpl)
	}
	return rec, nil
}

func abifString(t abifTag) string {
	switch {
	case t.Type == abifTypePString && len(t.Data) > 0:
		n := int(t.Data[0])
		if n > len(t.Data)-1 {
			n = len(t.Data) - 1
		}
		return string(t.Data[1 : 1+n])
	case t.Type == abifTypeCString:
		return string(bytes.TrimRight(t.Data, "\x00"))
	default:
		return string(t.Data)
	}
}
