package rand

import (
	"unicode/utf8"
)

// Printable ASCII, space through tilde. The Text filter.
func printable(b byte) bool { return b >= 0x20 && b <= 0x7e }

const float64Scale = 1.0 / (1 << 53)

// Gen is the typed draw facade over a 64-bit engine. It implements Rand
// and io.Reader. All methods mutate the underlying engine state.
type Gen struct {
	src Source64
}

// NewGen wraps an already-seeded 64-bit engine.
func NewGen(src Source64) *Gen { return &Gen{src: src} }

// NewSeiran returns a facade over a freshly seeded Seiran128 engine.
func NewSeiran(seed uint64) *Gen { return NewGen(NewSeiran128(seed)) }

// NewSFC64Gen returns a facade over a freshly seeded SFC64 engine with
// the recommended parameters.
func NewSFC64Gen(seed uint64) *Gen { return NewGen(NewSFC64(seed)) }

// Source returns the wrapped engine.
func (g *Gen) Source() Source64 { return g.src }

// Next returns the next raw word.
func (g *Gen) Next() uint64 { return g.src.Next() }

// Bool returns the low bit of one draw.
func (g *Gen) Bool() bool { return g.src.Next()&1 == 1 }

// Int returns a non-negative int from one draw.
func (g *Gen) Int() int { return int(uint(g.src.Next()) >> 1) }

// Uint8 returns the low 8 bits of one draw.
func (g *Gen) Uint8() uint8 { return uint8(g.src.Next()) }

// Uint16 returns the low 16 bits of one draw.
func (g *Gen) Uint16() uint16 { return uint16(g.src.Next()) }

// Uint32 returns the low 32 bits of one draw.
func (g *Gen) Uint32() uint32 { return uint32(g.src.Next()) }

// Uint64 returns one full draw.
func (g *Gen) Uint64() uint64 { return g.src.Next() }

// Float64 returns a uniform float64 in [0, 1) with 53 random bits.
func (g *Gen) Float64() float64 {
	return float64(g.src.Next()>>11) * float64Scale
}

// Read fills p with the little-endian byte packing of consecutive draws.
// err is always nil.
func (g *Gen) Read(p []byte) (n int, err error) {
	fill(g.src.Next, p, 8, nil)
	return len(p), nil
}

// Bytes returns n random bytes.
func (g *Gen) Bytes(n int) []byte {
	p := make([]byte, n)
	fill(g.src.Next, p, 8, nil)
	return p
}

// Text returns a string of n printable ASCII characters, 7 bits per
// candidate with rejection of the control and DEL ranges.
func (g *Gen) Text(n int) string {
	p := make([]byte, n)
	fill(g.src.Next, p, 7, printable)
	return asciiString(p)
}

// Gen32 is the typed draw facade over a 32-bit engine. It implements Rand
// and io.Reader.
type Gen32 struct {
	src Source32
}

// NewGen32 wraps an already-seeded 32-bit engine.
func NewGen32(src Source32) *Gen32 { return &Gen32{src: src} }

// NewSFC32Gen returns a facade over a freshly seeded SFC32 engine with
// the recommended parameters.
func NewSFC32Gen(seed uint32) *Gen32 { return NewGen32(NewSFC32(seed)) }

// Source returns the wrapped engine.
func (g *Gen32) Source() Source32 { return g.src }

// Next returns the next raw word.
func (g *Gen32) Next() uint32 { return g.src.Next() }

// Bool returns the low bit of one draw.
func (g *Gen32) Bool() bool { return g.src.Next()&1 == 1 }

// Int returns a non-negative int from one draw.
func (g *Gen32) Int() int { return int(uint(g.src.Next()) >> 1) }

// Uint8 returns the low 8 bits of one draw.
func (g *Gen32) Uint8() uint8 { return uint8(g.src.Next()) }

// Uint16 returns the low 16 bits of one draw.
func (g *Gen32) Uint16() uint16 { return uint16(g.src.Next()) }

// Uint32 returns one full draw.
func (g *Gen32) Uint32() uint32 { return g.src.Next() }

// Uint64 concatenates two consecutive draws, first draw in the low half.
func (g *Gen32) Uint64() uint64 {
	lo := uint64(g.src.Next())
	hi := uint64(g.src.Next())
	return hi<<32 | lo
}

// Float64 returns a uniform float64 in [0, 1) with 53 random bits, built
// from two draws.
func (g *Gen32) Float64() float64 {
	return float64(g.Uint64()>>11) * float64Scale
}

// Read fills p with the little-endian byte packing of consecutive draws.
// err is always nil.
func (g *Gen32) Read(p []byte) (n int, err error) {
	fill(g.src.Next, p, 8, nil)
	return len(p), nil
}

// Bytes returns n random bytes.
func (g *Gen32) Bytes(n int) []byte {
	p := make([]byte, n)
	fill(g.src.Next, p, 8, nil)
	return p
}

// Text returns a string of n printable ASCII characters.
func (g *Gen32) Text(n int) string {
	p := make([]byte, n)
	fill(g.src.Next, p, 7, printable)
	return asciiString(p)
}

// asciiString converts a filtered byte stream to a string. The filter
// admits only printable ASCII, so an invalid UTF-8 sequence here means
// the packer or the filter is broken, not bad input.
func asciiString(p []byte) string {
	if !utf8.Valid(p) {
		panic("rand: text stream escaped the printable-ASCII filter")
	}
	return string(p)
}

var (
	_ Rand = (*Gen)(nil)
	_ Rand = (*Gen32)(nil)
)
