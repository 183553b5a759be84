package zrdl

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/rezi-tui/rezi/internal/rezierr"
)

// Entry is one interned payload: a string table or blob table row, per
// spec.md §6 ("count-prefixed array of (hash: u32, byte_length: u32,
// bytes)").
type Entry struct {
	Hash  uint32
	Bytes []byte
}

// HashFNV1a computes the FNV-1a hash used for interning dedup, matching
// the stability-signature hash spec.md §4.3 also specifies.
func HashFNV1a(b []byte) uint32 {
	h := fnv.New32a()
	h.Write(b)
	return h.Sum32()
}

func encodeTable(entries []Entry) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(len(entries)))
	for _, e := range entries {
		row := make([]byte, 8+align4(len(e.Bytes)))
		binary.LittleEndian.PutUint32(row[0:4], e.Hash)
		binary.LittleEndian.PutUint32(row[4:8], uint32(len(e.Bytes)))
		copy(row[8:], e.Bytes)
		buf = append(buf, row...)
	}
	return buf
}

func decodeTable(b []byte) ([]Entry, error) {
	if len(b) < 4 {
		return nil, rezierr.Newf(rezierr.ProtocolDecode, "", "zrdl: truncated table count")
	}
	count := binary.LittleEndian.Uint32(b[0:4])
	off := 4
	entries := make([]Entry, 0, count)
	for i := uint32(0); i < count; i++ {
		if off+8 > len(b) {
			return nil, rezierr.Newf(rezierr.ProtocolDecode, "", "zrdl: truncated table entry %d", i)
		}
		hash := binary.LittleEndian.Uint32(b[off : off+4])
		byteLen := binary.LittleEndian.Uint32(b[off+4 : off+8])
		off += 8
		end := off + int(byteLen)
		if end > len(b) {
			return nil, rezierr.Newf(rezierr.ProtocolDecode, "", "zrdl: table entry %d payload overruns buffer", i)
		}
		bytesCopy := make([]byte, byteLen)
		copy(bytesCopy, b[off:end])
		entries = append(entries, Entry{Hash: hash, Bytes: bytesCopy})
		off += align4(int(byteLen))
	}
	return entries, nil
}

func align4(n int) int { return (n + 3) &^ 3 }
