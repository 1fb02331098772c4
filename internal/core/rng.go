package core

// DefaultSeed is the xorshift state the reference firmware boots with.
const DefaultSeed uint32 = 314159265

// RNG is a 32-bit xorshift generator. It is deterministic for a given seed
// and carries no other state.
type RNG struct {
	x uint32
}

// NewRNG creates a generator from seed. Zero is a fixed point of xorshift, so
// it is replaced with DefaultSeed.
func NewRNG(seed uint32) *RNG {
	if seed == 0 {
		seed = DefaultSeed
	}
	return &RNG{x: seed}
}

// Next advances the generator and returns the new state.
func (r *RNG) Next() uint32 {
	x := r.x
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.x = x
	return x
}

// Intn returns Next() mod n, or 0 when n <= 0.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint32(n))
}

// State returns the current generator word.
func (r *RNG) State() uint32 { return r.x }

// Seed resets the generator state, applying the same zero rule as NewRNG.
func (r *RNG) Seed(seed uint32) {
	if seed == 0 {
		seed = DefaultSeed
	}
	r.x = seed
}
