// Package fixture writes and verifies deterministic random test
// fixtures. A fixture is a payload file generated from a named algorithm
// and seed plus a JSON manifest describing how to regenerate it, so a
// consumer can check byte-for-byte that its own generator matches.
package fixture

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"time"

	"github.com/mailru/easyjson"

	"github.com/moontrade/rand"
)

// Payload kinds.
const (
	KindBlob = "blob" // raw byte stream
	KindText = "text" // printable ASCII
	KindU64  = "u64"  // little-endian 64-bit words
)

// ErrUnknownKind is returned for a kind other than blob, text, or u64.
var ErrUnknownKind = errors.New("unknown fixture kind")

// ErrMismatch is returned by Verify when the stored payload does not
// reproduce from its manifest.
var ErrMismatch = errors.New("fixture does not match its manifest")

// Spec describes a fixture to generate.
type Spec struct {
	Name   string // file base name
	Algo   string // rand.Algorithms() name
	Seed   uint64
	Kind   string
	Length int    // bytes for blob/text, words for u64
	Codec  string // payload compression, CodecNone when empty
	Level  int    // zstd level, 0 for default
}

func generate(s Spec) ([]byte, error) {
	g, err := rand.New(s.Algo, s.Seed)
	if err != nil {
		return nil, err
	}
	switch s.Kind {
	case KindBlob:
		return g.Bytes(s.Length), nil
	case KindText:
		return []byte(g.Text(s.Length)), nil
	case KindU64:
		p := make([]byte, 8*s.Length)
		for i := 0; i < s.Length; i++ {
			binary.LittleEndian.PutUint64(p[i*8:], g.Uint64())
		}
		return p, nil
	}
	return nil, fmt.Errorf("%w '%s'", ErrUnknownKind, s.Kind)
}

func checksum(p []byte) uint64 {
	h := fnv.New64a()
	h.Write(p)
	return h.Sum64()
}

func payloadPath(dir, name string) string {
	return filepath.Join(dir, name+".fix")
}

func manifestPath(dir, name string) string {
	return filepath.Join(dir, name+".json")
}

// Write generates the payload for s, stores it under dir, and returns
// the manifest that was written next to it. When the chosen codec does
// not pay for itself the payload is stored raw and the manifest records
// CodecNone, the same worth-it rule the block codecs use.
func Write(dir string, s Spec) (*Manifest, error) {
	raw, err := generate(s)
	if err != nil {
		return nil, err
	}
	codec := s.Codec
	if codec == "" {
		codec = CodecNone
	}
	stored, err := compress(codec, s.Level, raw)
	if err != nil {
		return nil, err
	}
	if len(stored) >= len(raw) {
		codec, stored = CodecNone, raw
	}
	m := &Manifest{
		Name:       s.Name,
		Algo:       s.Algo,
		Seed:       s.Seed,
		Kind:       s.Kind,
		Length:     s.Length,
		Codec:      codec,
		RawSize:    len(raw),
		StoredSize: len(stored),
		Checksum:   checksum(raw),
		Created:    time.Now().Unix(),
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(payloadPath(dir, s.Name), stored, 0644); err != nil {
		return nil, err
	}
	data, err := easyjson.Marshal(m)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(manifestPath(dir, s.Name), data, 0644); err != nil {
		return nil, err
	}
	return m, nil
}

// Read loads a fixture's manifest and its decompressed payload.
func Read(dir, name string) (*Manifest, []byte, error) {
	data, err := os.ReadFile(manifestPath(dir, name))
	if err != nil {
		return nil, nil, err
	}
	m := new(Manifest)
	if err := easyjson.Unmarshal(data, m); err != nil {
		return nil, nil, err
	}
	stored, err := os.ReadFile(payloadPath(dir, name))
	if err != nil {
		return nil, nil, err
	}
	raw, err := decompress(m.Codec, m.RawSize, stored)
	if err != nil {
		return nil, nil, err
	}
	return m, raw, nil
}

// Verify regenerates the fixture from its manifest and compares it to
// the stored payload.
func Verify(dir, name string) error {
	m, raw, err := Read(dir, name)
	if err != nil {
		return err
	}
	if checksum(raw) != m.Checksum {
		return fmt.Errorf("%w: checksum", ErrMismatch)
	}
	want, err := generate(Spec{
		Algo: m.Algo, Seed: m.Seed, Kind: m.Kind, Length: m.Length,
	})
	if err != nil {
		return err
	}
	if !bytes.Equal(raw, want) {
		return fmt.Errorf("%w: payload", ErrMismatch)
	}
	return nil
}
