package rand

import "math/bits"

// Word is a raw generator word width.
type Word interface {
	~uint32 | ~uint64
}

// fill drains words from next into dst, nbits bits per output byte,
// little end first. Leftover bits of a word are reused for the following
// units; a word is only pulled when fewer than nbits residual bits
// remain, so extracting n bytes at nbits=8 from a width-W source costs
// exactly ceil(n*8/W) words. When accept is non-nil, units failing it are
// discarded without advancing the output index and another candidate is
// drawn from the remaining (or fresh) bits.
//
// A zero-length dst or nbits==0 returns without touching the source.
// With a pathological accept that rejects everything this does not
// terminate; callers pass filters with near-uniform acceptance.
func fill[W Word](next func() W, dst []byte, nbits uint, accept func(byte) bool) {
	if len(dst) == 0 || nbits == 0 {
		return
	}
	width := uint(bits.Len64(uint64(^W(0))))
	mask := W(1)<<nbits - 1
	var (
		word W
		left uint
	)
	for i := 0; i < len(dst); {
		if left < nbits {
			word = next()
			left = width
		}
		u := byte(word & mask)
		word >>= nbits
		left -= nbits
		if accept != nil && !accept(u) {
			continue
		}
		dst[i] = u
		i++
	}
}
