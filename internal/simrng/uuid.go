package simrng

import "github.com/google/uuid"

// GenerateUUID draws 16 bytes from rng and returns them as a v4-format
// UUID, the Go analogue of the original's rng.gen::<[u8;16]>() ->
// uuid::Builder::from_random_bytes. Two Rng streams seeded identically
// produce identical UUIDs; this is a caller-side utility, never invoked by
// Tick itself (event ids come from Counters; command ids come from command
// sources such as internal/autopolicy, which use this function).
func GenerateUUID(rng Rng) uuid.UUID {
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		panic(err)
	}
	return id
}
