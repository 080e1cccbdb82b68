package main

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/moontrade/rand"
	"github.com/moontrade/rand/fixture"
)

const chunkSize = 64 * 1024

// streamPayload writes n units of the given kind to w, byte-identical
// to what a fixture of the same parameters stores. Blob output is chunked; the
// chunk size is a multiple of both word widths, so chunking never splits
// a word and the stream matches one-shot extraction. Text is packed 7
// bits at a time with carry-over between characters, so it is produced
// in one draw to keep that equivalence.
func streamPayload(w io.Writer, g rand.Rand, kind string, n int) error {
	bw := bufio.NewWriter(w)
	switch kind {
	case fixture.KindBlob:
		buf := make([]byte, chunkSize)
		for n > 0 {
			c := len(buf)
			if n < c {
				c = n
			}
			g.Read(buf[:c])
			if _, err := bw.Write(buf[:c]); err != nil {
				return err
			}
			n -= c
		}
	case fixture.KindText:
		if _, err := bw.WriteString(g.Text(n)); err != nil {
			return err
		}
	case fixture.KindU64:
		var buf [8]byte
		for i := 0; i < n; i++ {
			binary.LittleEndian.PutUint64(buf[:], g.Uint64())
			if _, err := bw.Write(buf[:]); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w '%s'", fixture.ErrUnknownKind, kind)
	}
	return bw.Flush()
}
