package fixture

import (
	"errors"
	"fmt"
	"sync"

	"github.com/DataDog/zstd"
	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
)

// Payload codecs.
const (
	CodecNone   = "none"
	CodecSnappy = "snappy"
	CodecLZ4    = "lz4"
	CodecZstd   = "zstd"
)

// ErrUnknownCodec is returned for a codec name other than the constants
// above.
var ErrUnknownCodec = errors.New("unknown codec")

// Codecs lists the accepted codec names in stable order.
func Codecs() []string {
	return []string{CodecNone, CodecSnappy, CodecLZ4, CodecZstd}
}

var lz4Tables = &sync.Pool{New: func() interface{} {
	return new([65536]int)
}}

func compress(codec string, level int, src []byte) ([]byte, error) {
	switch codec {
	case CodecNone:
		return src, nil
	case CodecSnappy:
		return snappy.Encode(nil, src), nil
	case CodecLZ4:
		ht := lz4Tables.Get().(*[65536]int)
		dst := make([]byte, lz4.CompressBlockBound(len(src)))
		n, err := lz4.CompressBlock(src, dst, ht[:])
		lz4Tables.Put(ht)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			// Incompressible; the caller falls back to raw storage.
			return src, nil
		}
		return dst[:n], nil
	case CodecZstd:
		if level == 0 {
			level = zstd.DefaultCompression
		}
		return zstd.CompressLevel(nil, src, level)
	}
	return nil, fmt.Errorf("%w '%s'", ErrUnknownCodec, codec)
}

func decompress(codec string, rawSize int, src []byte) ([]byte, error) {
	switch codec {
	case CodecNone:
		return src, nil
	case CodecSnappy:
		return snappy.Decode(nil, src)
	case CodecLZ4:
		dst := make([]byte, rawSize)
		n, err := lz4.UncompressBlock(src, dst)
		if err != nil {
			return nil, err
		}
		return dst[:n], nil
	case CodecZstd:
		return zstd.Decompress(nil, src)
	}
	return nil, fmt.Errorf("%w '%s'", ErrUnknownCodec, codec)
}
