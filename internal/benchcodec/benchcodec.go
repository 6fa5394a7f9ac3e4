// Package benchcodec packages simbench's per-seed artifacts: the
// compressed event log and the hashed final world state. It builds on
// the teacher's LZ4/BLAKE3 helpers (same sync.Pool-backed buffer reuse)
// but works directly over simbench's domain types — events.Envelope and
// simstate.GameState — so callers marshal nothing by hand and get a
// compression ratio back for free, instead of exporting raw
// bytes-in/bytes-out wrappers a caller has to marshal around itself.
package benchcodec

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/pierrec/lz4/v4"
	"lukechampine.com/blake3"

	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/events"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simstate"
)

var bufferPool = sync.Pool{New: func() interface{} { return new(bytes.Buffer) }}

// EventLog is one seed's compressed event log alongside the sizes
// needed to report its compression ratio.
type EventLog struct {
	Compressed []byte
	RawBytes   int
}

// Ratio returns the fraction of the original size the compressed log
// occupies (0 if RawBytes is zero).
func (e EventLog) Ratio() float64 {
	if e.RawBytes == 0 {
		return 0
	}
	return float64(len(e.Compressed)) / float64(e.RawBytes)
}

// CompressEventLog JSON-encodes log and LZ4-compresses the result.
func CompressEventLog(log []events.Envelope) (EventLog, error) {
	raw, err := json.Marshal(log)
	if err != nil {
		return EventLog{}, fmt.Errorf("marshaling event log: %w", err)
	}
	return EventLog{Compressed: compressLZ4(raw), RawBytes: len(raw)}, nil
}

// DecompressEventLog reverses CompressEventLog.
func DecompressEventLog(compressed []byte) ([]events.Envelope, error) {
	raw, err := decompressLZ4(compressed)
	if err != nil {
		return nil, fmt.Errorf("decompressing event log: %w", err)
	}
	var log []events.Envelope
	if err := json.Unmarshal(raw, &log); err != nil {
		return nil, fmt.Errorf("unmarshaling event log: %w", err)
	}
	return log, nil
}

// HashState JSON-encodes state and returns the hex-encoded BLAKE3 digest
// of the encoding, for cheap cross-run determinism comparison.
func HashState(state *simstate.GameState) (string, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("marshaling state for hashing: %w", err)
	}
	sum := blake3.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

func compressLZ4(src []byte) []byte {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)

	zw := lz4.NewWriter(buf)
	zw.Write(src)
	zw.Close()

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out
}

func decompressLZ4(src []byte) ([]byte, error) {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)

	zr := lz4.NewReader(bytes.NewReader(src))
	if _, err := io.Copy(buf, zr); err != nil {
		return nil, err
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}
