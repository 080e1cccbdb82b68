package fixture

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moontrade/rand"
)

func TestWriteReadVerify(t *testing.T) {
	dir := t.TempDir()
	for _, codec := range Codecs() {
		for _, kind := range []string{KindBlob, KindText, KindU64} {
			name := codec + "-" + kind
			spec := Spec{
				Name:   name,
				Algo:   rand.Seiran128Name,
				Seed:   401,
				Kind:   kind,
				Length: 512,
				Codec:  codec,
			}
			m, err := Write(dir, spec)
			require.NoError(t, err, name)
			require.Equal(t, 512, m.Length)

			rm, raw, err := Read(dir, name)
			require.NoError(t, err, name)
			require.Equal(t, m, rm)
			require.Equal(t, m.RawSize, len(raw))
			require.Equal(t, m.Checksum, checksum(raw))

			require.NoError(t, Verify(dir, name), name)
		}
	}
}

func TestWriteBlobMatchesGenerator(t *testing.T) {
	dir := t.TempDir()
	_, err := Write(dir, Spec{
		Name: "blob", Algo: rand.Seiran128Name, Seed: 401,
		Kind: KindBlob, Length: 9,
	})
	require.NoError(t, err)
	_, raw, err := Read(dir, "blob")
	require.NoError(t, err)
	require.Equal(t,
		[]byte{0x5F, 0x30, 0x45, 0xD2, 0x29, 0x36, 0x4E, 0x8D, 0x31}, raw)
}

func TestTextFixtureCompresses(t *testing.T) {
	// Printable ASCII drawn 7 bits at a time is not byte-uniform, so the
	// block codecs should usually beat raw storage on a large payload.
	dir := t.TempDir()
	m, err := Write(dir, Spec{
		Name: "t", Algo: rand.SFC64Name, Seed: 7,
		Kind: KindText, Length: 1 << 16, Codec: CodecZstd,
	})
	require.NoError(t, err)
	if m.Codec == CodecZstd {
		require.Less(t, m.StoredSize, m.RawSize)
	}
	require.NoError(t, Verify(dir, "t"))
}

func TestIncompressibleBlobFallsBackToRaw(t *testing.T) {
	// A raw random blob is incompressible; the worth-it rule must kick in
	// and store it uncompressed.
	dir := t.TempDir()
	m, err := Write(dir, Spec{
		Name: "b", Algo: rand.SFC32Name, Seed: 99,
		Kind: KindBlob, Length: 1 << 15, Codec: CodecLZ4,
	})
	require.NoError(t, err)
	require.Equal(t, CodecNone, m.Codec)
	require.Equal(t, m.RawSize, m.StoredSize)
	require.NoError(t, Verify(dir, "b"))
}

func TestVerifyDetectsTamper(t *testing.T) {
	dir := t.TempDir()
	_, err := Write(dir, Spec{
		Name: "x", Algo: rand.SFC64Name, Seed: 1,
		Kind: KindBlob, Length: 64,
	})
	require.NoError(t, err)

	p := payloadPath(dir, "x")
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	data[0] ^= 0xFF
	require.NoError(t, os.WriteFile(p, data, 0644))

	require.ErrorIs(t, Verify(dir, "x"), ErrMismatch)
}

func TestUnknownKindAndCodec(t *testing.T) {
	dir := t.TempDir()
	_, err := Write(dir, Spec{
		Name: "k", Algo: rand.SFC64Name, Seed: 1, Kind: "words", Length: 4,
	})
	require.ErrorIs(t, err, ErrUnknownKind)

	_, err = Write(dir, Spec{
		Name: "c", Algo: rand.SFC64Name, Seed: 1, Kind: KindBlob,
		Length: 4, Codec: "brotli",
	})
	require.ErrorIs(t, err, ErrUnknownCodec)
}

func TestManifestRoundTrip(t *testing.T) {
	m := Manifest{
		Name: "n", Algo: "sfc64", Seed: 0xcafef00dbeef5eed, Kind: "blob",
		Length: 10, Codec: "snappy", RawSize: 10, StoredSize: 12,
		Checksum: 0xABCDEF, Created: 1756080000,
	}
	data, err := m.MarshalJSON()
	require.NoError(t, err)
	var got Manifest
	require.NoError(t, got.UnmarshalJSON(data))
	require.Equal(t, m, got)
}
