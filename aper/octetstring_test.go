package aper_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quietbit/aper/aper"
	"github.com/quietbit/aper/internal/constraint"
)

func TestOctetStringFixedSize(t *testing.T) {
	size := constraint.Fixed(3)
	os := aper.OctetString{Data: []byte{0x46, 0x4f, 0x4f}, Size: &size}

	e := aper.NewEncoder()
	require.NoError(t, os.EncodeAPER(e, constraint.Unconstrained))
	require.Equal(t, []byte{0x46, 0x4f, 0x4f}, e.Bytes())

	var got aper.OctetString
	got.Size = &size
	require.NoError(t, got.DecodeAPER(aper.NewDecoder(e.Bytes()), constraint.Unconstrained))
	require.Equal(t, os.Data, got.Data)
}

func TestOctetStringUnconstrainedRoundTrip(t *testing.T) {
	os := aper.OctetString{Data: []byte("hello, aper")}

	e := aper.NewEncoder()
	require.NoError(t, os.EncodeAPER(e, constraint.Unconstrained))
	require.Equal(t, byte(len(os.Data)), e.Bytes()[0])

	var got aper.OctetString
	require.NoError(t, got.DecodeAPER(aper.NewDecoder(e.Bytes()), constraint.Unconstrained))
	require.Equal(t, os.Data, got.Data)
}

func TestOctetStringFragmentation(t *testing.T) {
	data := bytes.Repeat([]byte{0xab}, 20000)
	os := aper.OctetString{Data: data}

	e := aper.NewEncoder()
	require.NoError(t, os.EncodeAPER(e, constraint.Unconstrained))

	// 20000 octets: one 16K fragment (0xC1 marker) then a 3616-octet
	// remainder under a two-octet determinant.
	encoded := e.Bytes()
	require.Equal(t, byte(0xC1), encoded[0])

	var got aper.OctetString
	require.NoError(t, got.DecodeAPER(aper.NewDecoder(encoded), constraint.Unconstrained))
	require.Equal(t, data, got.Data)
}

// TestOctetStringFragmentationBoundaries covers lengths at and around
// the 16K fragment unit: exact multiples (16384, 32768, 49152, 65536)
// must still round-trip once the final fragment closes with a
// terminal non-fragment determinant, and 65537 exercises a multiple
// plus a short-form remainder.
func TestOctetStringFragmentationBoundaries(t *testing.T) {
	for _, n := range []int{16384, 32768, 49152, 65536, 65537} {
		data := bytes.Repeat([]byte{0xab}, n)
		os := aper.OctetString{Data: data}

		e := aper.NewEncoder()
		require.NoError(t, os.EncodeAPER(e, constraint.Unconstrained), "n=%d", n)

		var got aper.OctetString
		require.NoError(t, got.DecodeAPER(aper.NewDecoder(e.Bytes()), constraint.Unconstrained), "n=%d", n)
		require.Equal(t, data, got.Data, "n=%d", n)
	}
}

// TestOctetStringFragmentationExactMultipleEmitsTerminator pins the
// wire shape at exactly one fragment: a 0xC1 marker, the 16384 octets,
// and a trailing zero-valued short-form determinant closing the
// stream, per §11.9.3.8.3's NOTE.
func TestOctetStringFragmentationExactMultipleEmitsTerminator(t *testing.T) {
	data := bytes.Repeat([]byte{0xcd}, 16384)
	os := aper.OctetString{Data: data}

	e := aper.NewEncoder()
	require.NoError(t, os.EncodeAPER(e, constraint.Unconstrained))

	encoded := e.Bytes()
	require.Len(t, encoded, 1+16384+1)
	require.Equal(t, byte(0xC1), encoded[0])
	require.Equal(t, byte(0x00), encoded[len(encoded)-1])
}

// TestOctetStringFixedSizeMismatchRejected covers a container whose
// actual length disagrees with its declared fixed size: EncodeAPER
// must reject it up front rather than silently emit a truncated or
// oversized encoding.
func TestOctetStringFixedSizeMismatchRejected(t *testing.T) {
	size := constraint.Fixed(3)
	os := aper.OctetString{Data: make([]byte, 5), Size: &size}

	e := aper.NewEncoder()
	err := os.EncodeAPER(e, constraint.Unconstrained)
	require.ErrorIs(t, err, aper.ErrSizeNotInRange)
}

// TestOctetStringBoundedSizeAlignsContent covers a fully-constrained
// but non-fixed size (range > 1, <= 255): the length determinant is an
// unaligned bit-field, but the octets themselves must still land on a
// byte boundary. Size [1,20] with 2 octets of data: length 2 encodes
// as value-min = 1 in a 5-bit field (00001), padded to 0x08, followed
// by the two octets verbatim.
func TestOctetStringBoundedSizeAlignsContent(t *testing.T) {
	size := constraint.Bounded(1, 20)
	os := aper.OctetString{Data: []byte{0xAB, 0xCD}, Size: &size}

	e := aper.NewEncoder()
	require.NoError(t, os.EncodeAPER(e, constraint.Unconstrained))
	require.Equal(t, []byte{0x08, 0xAB, 0xCD}, e.Bytes())

	var got aper.OctetString
	got.Size = &size
	require.NoError(t, got.DecodeAPER(aper.NewDecoder(e.Bytes()), constraint.Unconstrained))
	require.Equal(t, os.Data, got.Data)
}
