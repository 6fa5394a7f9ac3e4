// Package simrng provides the seeded, deterministic random stream the core
// draws from. It is the one place outside crypto packages where we reach
// for a real cipher primitive: golang.org/x/crypto/chacha20 keyed from the
// run's uint64 seed and read as an endless keystream, giving a
// ChaCha-family generator (the full 20-round ChaCha20, not an 8-round
// variant) without a hand-rolled PRNG.
package simrng

import (
	"crypto/cipher"
	"encoding/binary"
	"io"

	"golang.org/x/crypto/chacha20"
)

// Rng is the interface the core draws randomness from. Callers own an Rng
// and pass it into Tick; the core never constructs one itself.
type Rng interface {
	// Uint64 returns the next 64 bits of the stream.
	Uint64() uint64
	// Float32 returns a value in [0, 1).
	Float32() float32
	// Read fills p with raw stream bytes (used for UUID generation).
	Read(p []byte) (int, error)
}

// chacha8Rng is a Rng backed by a ChaCha20 keystream keyed deterministically
// from a uint64 seed, used with an all-zero nonce. Nothing about a given
// seed's stream depends on wall-clock time, goroutine scheduling, or
// platform — only on the seed value and the sequence of draws.
type chacha8Rng struct {
	stream cipher.Stream
}

// New returns a new deterministic Rng for the given seed.
func New(seed uint64) Rng {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[0:8], seed)
	// Remaining key bytes stay zero: the seed is the only entropy source,
	// exactly as spec.md's "Seeded, deterministic stream" calls for.
	var nonce [chacha20.NonceSize]byte
	stream, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		// Only possible if key/nonce length is wrong, which is a
		// programmer error, not a runtime condition.
		panic(err)
	}
	return &chacha8Rng{stream: stream}
}

func (r *chacha8Rng) Uint64() uint64 {
	var zero, out [8]byte
	r.stream.XORKeyStream(out[:], zero[:])
	return binary.LittleEndian.Uint64(out[:])
}

func (r *chacha8Rng) Float32() float32 {
	// 24 significant bits, matching the precision rand::Rng::gen::<f32>()
	// in [0,1) typically provides.
	const mantissaBits = 24
	v := r.Uint64() >> (64 - mantissaBits)
	return float32(v) / float32(uint32(1)<<mantissaBits)
}

func (r *chacha8Rng) Read(p []byte) (int, error) {
	total := len(p)
	var zero [64]byte
	for len(p) > 0 {
		n := len(p)
		if n > len(zero) {
			n = len(zero)
		}
		r.stream.XORKeyStream(p[:n], zero[:n])
		p = p[n:]
	}
	return total, nil
}

var _ io.Reader = (*chacha8Rng)(nil)
