package internal

import "math/bits"

// SplitMix64 constants
const (
	rngGamma = 0x9E3779B97F4A7C15
	rngMixA  = 0xBF58476D1CE4E5B9
	rngMixB  = 0x94D049BB133111EB
)

// DrawStream is a counter-based random stream. The value of the n-th draw
// depends only on the seed and n, so a render that makes the same sequence
// of draws always picks the same options regardless of pool sizes.
type DrawStream struct {
	seed    uint64
	counter uint64
}

// NewDrawStream creates a stream for the given seed
func NewDrawStream(seed uint64) *DrawStream {
	return &DrawStream{seed: seed}
}

// Seed returns the seed the stream was created with
func (s *DrawStream) Seed() uint64 {
	return s.seed
}

// Draws returns how many values have been drawn so far
func (s *DrawStream) Draws() uint64 {
	return s.counter
}

// Next returns the next 64-bit value and advances the counter by exactly one
func (s *DrawStream) Next() uint64 {
	value := mix64(s.seed + s.counter*rngGamma)
	s.counter++
	return value
}

// IntN returns a value in [0, n) using a single draw. The multiply-shift
// reduction keeps the one-draw-per-choice contract, which rejection
// sampling would break. n must be positive.
func (s *DrawStream) IntN(n int) int {
	hi, _ := bits.Mul64(s.Next(), uint64(n))
	return int(hi)
}

// mix64 is the SplitMix64 finalizer
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= rngMixA
	x ^= x >> 27
	x *= rngMixB
	x ^= x >> 31
	return x
}
