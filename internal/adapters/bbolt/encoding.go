// Binary encoding for baseline blobs.
//
// The fingerprint set is the dominant blob and is stored as a compact sorted
// list; display entries are gob encoded alongside it.
//
// Fingerprint list format (little-endian):
//
//	count:        uint32
//	fingerprints: [count]uint64, ascending
package bbolt

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"sort"

	"github.com/corey/argsel/internal/ports"
)

// fingerprintSize is the byte size of a single encoded fingerprint.
const fingerprintSize = 8

// encodeFingerprints encodes the fingerprint set in ascending order so the
// output is deterministic.
func encodeFingerprints(entries map[uint64]ports.BaselineEntry) []byte {
	fps := make([]uint64, 0, len(entries))
	for fp := range entries {
		fps = append(fps, fp)
	}
	sort.Slice(fps, func(i, j int) bool { return fps[i] < fps[j] })

	buf := make([]byte, 4+len(fps)*fingerprintSize)
	binary.LittleEndian.PutUint32(buf, uint32(len(fps)))
	off := 4
	for _, fp := range fps {
		binary.LittleEndian.PutUint64(buf[off:], fp)
		off += fingerprintSize
	}
	return buf
}

// decodeFingerprints decodes a list written by encodeFingerprints.
func decodeFingerprints(data []byte) ([]uint64, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("fingerprint list too short: %d bytes", len(data))
	}
	count := int(binary.LittleEndian.Uint32(data))
	if len(data) != 4+count*fingerprintSize {
		return nil, fmt.Errorf("fingerprint list: want %d bytes for %d entries, got %d",
			4+count*fingerprintSize, count, len(data))
	}
	fps := make([]uint64, count)
	off := 4
	for i := range fps {
		fps[i] = binary.LittleEndian.Uint64(data[off:])
		off += fingerprintSize
	}
	return fps, nil
}

// baselineMeta is the gob-encoded part of a baseline.
type baselineMeta struct {
	RunID     string
	CreatedAt int64 // unix nanoseconds
	Entries   map[uint64]ports.BaselineEntry
}

func encodeMeta(m baselineMeta) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(m); err != nil {
		return nil, fmt.Errorf("gob encode baseline: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeMeta(data []byte) (baselineMeta, error) {
	var m baselineMeta
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&m); err != nil {
		return m, fmt.Errorf("gob decode baseline: %w", err)
	}
	return m, nil
}
