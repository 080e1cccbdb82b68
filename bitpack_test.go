package rand

import "testing"

// countingSource wraps an engine and counts how many words were pulled.
type countingSource struct {
	src   Source64
	calls int
}

func (c *countingSource) Next() uint64 {
	c.calls++
	return c.src.Next()
}

func TestFillWordConsumption(t *testing.T) {
	// Extracting n bytes from a width-W source must cost exactly
	// ceil(n*8/W) words when nothing is rejected.
	for _, n := range []int{1, 7, 8, 9, 16, 17, 1024} {
		c := &countingSource{src: NewSeiran128(401)}
		fill(c.Next, make([]byte, n), 8, nil)
		want := (n*8 + 63) / 64
		if c.calls != want {
			t.Fatalf("n=%d: pulled %d words, want %d", n, c.calls, want)
		}
	}
	c32 := 0
	s32 := NewSFC32(0xbeef5eed)
	next := func() uint32 { c32++; return s32.Next() }
	fill(next, make([]byte, 9), 8, nil)
	if c32 != 3 {
		t.Fatalf("32-bit source: pulled %d words, want 3", c32)
	}
}

func TestFillLittleEndianPacking(t *testing.T) {
	want := []byte{0x5F, 0x30, 0x45, 0xD2, 0x29, 0x36, 0x4E, 0x8D, 0x31}
	dst := make([]byte, len(want))
	fill(NewSeiran128(401).Next, dst, 8, nil)
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("byte %d: got %02X, want %02X", i, dst[i], want[i])
		}
	}
}

func TestFillZeroLengthPullsNothing(t *testing.T) {
	c := &countingSource{src: NewSeiran128(1)}
	fill(c.Next, nil, 8, nil)
	fill(c.Next, []byte{}, 8, nil)
	if c.calls != 0 {
		t.Fatalf("zero-length fill pulled %d words", c.calls)
	}
}

func TestFillZeroBitsPullsNothing(t *testing.T) {
	c := &countingSource{src: NewSeiran128(1)}
	fill(c.Next, make([]byte, 16), 0, nil)
	if c.calls != 0 {
		t.Fatalf("nbits=0 fill pulled %d words", c.calls)
	}
}

func TestFillRejection(t *testing.T) {
	dst := make([]byte, 256)
	even := func(b byte) bool { return b&1 == 0 }
	fill(NewSFC64(7).Next, dst, 8, even)
	for i, b := range dst {
		if b&1 != 0 {
			t.Fatalf("byte %d: rejected value %02X reached the output", i, b)
		}
	}
}

func TestFillRejectionKeepsLength(t *testing.T) {
	// A tight filter still yields exactly the requested unit count.
	dst := make([]byte, 64)
	narrow := func(b byte) bool { return b < 4 }
	fill(NewSeiran128(3).Next, dst, 8, narrow)
	for i, b := range dst {
		if b >= 4 {
			t.Fatalf("byte %d: got %02X outside the accepted range", i, b)
		}
	}
}

func BenchmarkFillBytes(b *testing.B) {
	s := NewSeiran128(1)
	dst := make([]byte, 4096)
	b.SetBytes(int64(len(dst)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		fill(s.Next, dst, 8, nil)
	}
}
