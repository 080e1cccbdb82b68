package rand

import "math/bits"

// The SFC ("Small Fast Chaotic") generators keep three chaotic state words
// plus a counter, mixed by a rotation p, a right shift q, and a left
// shift r fixed at construction. The counter guarantees a minimum period
// of 2^width even if the chaotic words fall into a short cycle.
//
// Parameter sets below are the ones published with PractRand. The default
// constructors pick the recommended set for each width.

// Default seeds used by InitDefault.
const (
	sfc64DefaultSeed = 0xcafef00dbeef5eed
	sfc32DefaultSeed = 0xbeef5eed
)

// Seeding runs this many discarded rounds to diffuse the seed and counter
// through the chaotic words.
const sfcSeedRounds = 12

// SFC64 is the 64-bit Small Fast Chaotic generator.
type SFC64 struct {
	a, b, c, d uint64
	p, q, r    uint
}

// NewSFC64 returns an SFC64 with the recommended (24,11,3) parameters,
// seeded from seed.
func NewSFC64(seed uint64) *SFC64 {
	s := NewSFC64Custom(24, 11, 3)
	s.Init(seed)
	return s
}

// NewSFC64Alt returns the alternate (25,12,3) parameterization, seeded
// from seed. The default set has better diffusion; this one exists for
// interoperability with streams produced by it.
func NewSFC64Alt(seed uint64) *SFC64 {
	s := NewSFC64Custom(25, 12, 3)
	s.Init(seed)
	return s
}

// NewSFC64Custom returns an engine with caller-chosen rotation and shift
// parameters and zeroed, unseeded state. Call one of the Init variants
// before drawing.
func NewSFC64Custom(p, q, r uint) *SFC64 {
	return &SFC64{p: p, q: q, r: r}
}

// Init3 seeds the three chaotic words directly, resets the counter to 1,
// and runs the warm-up rounds.
func (s *SFC64) Init3(s1, s2, s3 uint64) {
	s.a, s.b, s.c, s.d = s1, s2, s3, 1
	for i := 0; i < sfcSeedRounds; i++ {
		s.Next()
	}
}

// Init seeds all three chaotic words from the same value.
func (s *SFC64) Init(seed uint64) { s.Init3(seed, seed, seed) }

// InitDefault seeds the engine from the fixed default seed.
func (s *SFC64) InitDefault() { s.Init(sfc64DefaultSeed) }

// Next returns the next word of the stream and advances the state one step.
func (s *SFC64) Next() (out uint64) {
	out = s.a + s.b + s.d
	s.a = s.b ^ (s.b >> s.q)
	s.b = s.c + (s.c << s.r)
	s.c = bits.RotateLeft64(s.c, int(s.p)) + out
	s.d++
	return
}

// SFC32 is the 32-bit Small Fast Chaotic generator.
type SFC32 struct {
	a, b, c, d uint32
	p, q, r    uint
}

// NewSFC32 returns an SFC32 with the recommended (21,9,3) parameters,
// seeded from seed.
func NewSFC32(seed uint32) *SFC32 {
	s := NewSFC32Custom(21, 9, 3)
	s.Init(seed)
	return s
}

// NewSFC32Alt returns the alternate recommended (15,8,3) parameterization,
// seeded from seed.
func NewSFC32Alt(seed uint32) *SFC32 {
	s := NewSFC32Custom(15, 8, 3)
	s.Init(seed)
	return s
}

// NewSFC32Custom returns an engine with caller-chosen parameters and
// zeroed, unseeded state. The legacy (25,8,3) set from older PractRand
// releases can be built through here.
func NewSFC32Custom(p, q, r uint) *SFC32 {
	return &SFC32{p: p, q: q, r: r}
}

// Init3 seeds the three chaotic words directly, resets the counter to 1,
// and runs the warm-up rounds.
func (s *SFC32) Init3(s1, s2, s3 uint32) {
	s.a, s.b, s.c, s.d = s1, s2, s3, 1
	for i := 0; i < sfcSeedRounds; i++ {
		s.Next()
	}
}

// Init seeds all three chaotic words from the same value.
func (s *SFC32) Init(seed uint32) { s.Init3(seed, seed, seed) }

// InitDefault seeds the engine from the fixed default seed.
func (s *SFC32) InitDefault() { s.Init(sfc32DefaultSeed) }

// Next returns the next word of the stream and advances the state one step.
func (s *SFC32) Next() (out uint32) {
	out = s.a + s.b + s.d
	s.a = s.b ^ (s.b >> s.q)
	s.b = s.c + (s.c << s.r)
	s.c = bits.RotateLeft32(s.c, int(s.p)) + out
	s.d++
	return
}
