package aper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quietbit/aper/aper"
	"github.com/quietbit/aper/internal/constraint"
)

func TestBitStringFixedSize(t *testing.T) {
	size := constraint.Fixed(4)
	bs := aper.BitString{Bytes: []byte{0xe0}, BitLength: 4, Size: &size}

	e := aper.NewEncoder()
	require.NoError(t, bs.EncodeAPER(e, constraint.Unconstrained))
	require.Equal(t, []byte{0xe0}, e.Bytes())

	var got aper.BitString
	got.Size = &size
	require.NoError(t, got.DecodeAPER(aper.NewDecoder(e.Bytes()), constraint.Unconstrained))
	require.Equal(t, bs.Bytes, got.Bytes)
	require.Equal(t, bs.BitLength, got.BitLength)
}

func TestBitStringUnconstrainedRoundTrip(t *testing.T) {
	bs := aper.BitString{Bytes: []byte{0xb6, 0xc0}, BitLength: 10}

	e := aper.NewEncoder()
	require.NoError(t, bs.EncodeAPER(e, constraint.Unconstrained))

	var got aper.BitString
	require.NoError(t, got.DecodeAPER(aper.NewDecoder(e.Bytes()), constraint.Unconstrained))
	require.Equal(t, bs.BitLength, got.BitLength)

	// Compare only the meaningful bits; trailing pad bits beyond
	// BitLength in the last octet are implementation detail.
	require.Equal(t, bs.Bytes[0], got.Bytes[0])
}

// TestBitStringFixedSizeAbove16Aligns covers a fixed bit length outside
// the small-unaligned exception (> 16 bits): the length determinant
// still contributes zero bits, but the content must be realigned
// before it is written, matching a preceding odd-width field.
func TestBitStringFixedSizeAbove16Aligns(t *testing.T) {
	size := constraint.Fixed(20)
	bs := aper.BitString{Bytes: []byte{0xff, 0xff, 0xf0}, BitLength: 20, Size: &size}

	e := aper.NewEncoder()
	// Write 3 odd bits first so the cursor is mid-byte going into the
	// bit string.
	require.NoError(t, e.EncodeInteger(1, ptr(int64(0)), ptr(int64(4)), false))
	require.NoError(t, bs.EncodeAPER(e, constraint.Unconstrained))

	// The 3-bit prefix pads to a full byte (0x20), then the 20 content
	// bits follow byte-aligned.
	require.Equal(t, []byte{0x20, 0xff, 0xff, 0xf0}, e.Bytes())

	d := aper.NewDecoder(e.Bytes())
	_, err := d.DecodeInteger(ptr(int64(0)), ptr(int64(4)), false)
	require.NoError(t, err)
	var got aper.BitString
	got.Size = &size
	require.NoError(t, got.DecodeAPER(d, constraint.Unconstrained))
	require.Equal(t, bs.Bytes, got.Bytes)
	require.Equal(t, bs.BitLength, got.BitLength)
}

// TestBitStringFixedSizeMismatchRejected mirrors
// TestOctetStringFixedSizeMismatchRejected for BitString.
func TestBitStringFixedSizeMismatchRejected(t *testing.T) {
	size := constraint.Fixed(4)
	bs := aper.BitString{Bytes: []byte{0xe0}, BitLength: 8, Size: &size}

	e := aper.NewEncoder()
	err := bs.EncodeAPER(e, constraint.Unconstrained)
	require.ErrorIs(t, err, aper.ErrSizeNotInRange)
}

// TestBitStringBoundedSizeAlignsContent covers a fully-constrained but
// non-fixed size: the length determinant is an unaligned bit-field,
// but the content still lands on a byte boundary.
func TestBitStringBoundedSizeAlignsContent(t *testing.T) {
	size := constraint.Bounded(1, 20)
	bs := aper.BitString{Bytes: []byte{0xff, 0xf0}, BitLength: 12, Size: &size}

	e := aper.NewEncoder()
	require.NoError(t, bs.EncodeAPER(e, constraint.Unconstrained))

	// range 20 -> 5-bit field, value-min = 12-1 = 11 = 0b01011, padded
	// to 0x58, then the 12 content bits byte-aligned.
	require.Equal(t, []byte{0x58, 0xff, 0xf0}, e.Bytes())

	var got aper.BitString
	got.Size = &size
	require.NoError(t, got.DecodeAPER(aper.NewDecoder(e.Bytes()), constraint.Unconstrained))
	require.Equal(t, bs.Bytes, got.Bytes)
	require.Equal(t, bs.BitLength, got.BitLength)
}

// TestBitStringFragmentationBoundaries covers bit lengths at and
// around the 16K-bit fragment unit, mirroring
// TestOctetStringFragmentationBoundaries.
func TestBitStringFragmentationBoundaries(t *testing.T) {
	for _, n := range []uint64{16384, 32768, 49152, 65536, 65537} {
		data := fixedBits(n, 0xa5)
		bs := aper.BitString{Bytes: data, BitLength: n}

		e := aper.NewEncoder()
		require.NoError(t, bs.EncodeAPER(e, constraint.Unconstrained), "n=%d", n)

		var got aper.BitString
		require.NoError(t, got.DecodeAPER(aper.NewDecoder(e.Bytes()), constraint.Unconstrained), "n=%d", n)
		require.Equal(t, n, got.BitLength, "n=%d", n)
		require.Equal(t, data, got.Bytes, "n=%d", n)
	}
}

// fixedBits builds an n-bit packed byte slice filled with fill,
// zero-masking the unused low-order bits of the final byte the same
// way readPackedBits does.
func fixedBits(n uint64, fill byte) []byte {
	full := n / 8
	rem := n % 8
	size := full
	if rem > 0 {
		size++
	}
	data := make([]byte, size)
	for i := range data {
		data[i] = fill
	}
	if rem > 0 {
		data[size-1] &= 0xFF << (8 - rem)
	}
	return data
}

func ptr(v int64) *int64 { return &v }
