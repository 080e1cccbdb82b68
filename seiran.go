package rand

import "math/bits"

// Seiran128 is andanteyk's seiran128 generator: 128 bits of state, one
// multiply and two rotates per output word, and polynomial jump-ahead.
// The zero value is a valid but degenerate state; call Init before use.
type Seiran128 struct {
	a uint64
	b uint64
}

// NewSeiran128 returns a seeded Seiran128 engine.
func NewSeiran128(seed uint64) *Seiran128 {
	s := new(Seiran128)
	s.Init(seed)
	return s
}

// Init expands seed into the two state words with an LCG step per word.
// Any seed is fine, including zero.
func (s *Seiran128) Init(seed uint64) {
	s.a = seed*6364136223846793005 + 1442695040888963407
	s.b = s.a*6364136223846793005 + 1442695040888963407
}

// Next returns the next word of the stream and advances the state one step.
func (s *Seiran128) Next() uint64 {
	a, b := s.a, s.b
	out := bits.RotateLeft64((a+b)*9, 29) + a
	s.a = a ^ bits.RotateLeft64(b, 29)
	s.b = a ^ (b << 9)
	return out
}

// Jump polynomials, low word first. Each advances the stream by the
// named power-of-two step count.
var (
	seiranJump32 = [2]uint64{0x40165CBAE9CA6DEB, 0x688E6BFC19485AB1}
	seiranJump64 = [2]uint64{0xF4DF34E424CA5C56, 0x2FE2DE5C2E12F601}
	seiranJump96 = [2]uint64{0x185F4DF8B7634607, 0x95A98C7025F908B2}
)

// Jump32 advances the state as if Next had been called 2^32 times.
func (s *Seiran128) Jump32() { s.jump(&seiranJump32) }

// Jump64 advances the state as if Next had been called 2^64 times.
func (s *Seiran128) Jump64() { s.jump(&seiranJump64) }

// Jump96 advances the state as if Next had been called 2^96 times.
// Useful for carving out 2^32 non-overlapping streams of length 2^96.
func (s *Seiran128) Jump96() { s.jump(&seiranJump96) }

func (s *Seiran128) jump(poly *[2]uint64) {
	var t0, t1 uint64
	for i := 0; i < len(poly); i++ {
		for b := 0; b < 64; b++ {
			if poly[i]&(uint64(1)<<b) != 0 {
				t0 ^= s.a
				t1 ^= s.b
			}
			s.Next()
		}
	}
	s.a, s.b = t0, t1
}
