package aper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quietbit/aper/aper"
)

func TestEncodeConstrainedWholeNumberSmallRange(t *testing.T) {
	// range 4 (2 bits): value 3 - lb(0) = 3 = 0b11, left-packed into
	// the top 2 bits of the first octet.
	lb, ub := int64(0), int64(3)
	enc, err := aper.EncodeInt(3, &lb, &ub)
	require.NoError(t, err)
	require.Equal(t, []byte{0xc0}, enc.Bytes())

	v, err := aper.DecodeInt(enc.Bytes(), &lb, &ub)
	require.NoError(t, err)
	require.Equal(t, int64(3), v)
}

func TestEncodeConstrainedWholeNumberOneOctet(t *testing.T) {
	lb, ub := int64(0), int64(255)
	enc, err := aper.EncodeInt(200, &lb, &ub)
	require.NoError(t, err)
	require.Equal(t, []byte{200}, enc.Bytes())

	v, err := aper.DecodeInt(enc.Bytes(), &lb, &ub)
	require.NoError(t, err)
	require.Equal(t, int64(200), v)
}

func TestEncodeConstrainedWholeNumberTwoOctets(t *testing.T) {
	lb, ub := int64(0), int64(65535)
	enc, err := aper.EncodeInt(0x1234, &lb, &ub)
	require.NoError(t, err)
	require.Equal(t, []byte{0x12, 0x34}, enc.Bytes())

	v, err := aper.DecodeInt(enc.Bytes(), &lb, &ub)
	require.NoError(t, err)
	require.Equal(t, int64(0x1234), v)
}

func TestEncodeConstrainedWholeNumberIndefinite(t *testing.T) {
	lb, ub := int64(0), int64(1000000)
	enc, err := aper.EncodeInt(999999, &lb, &ub)
	require.NoError(t, err)

	v, err := aper.DecodeInt(enc.Bytes(), &lb, &ub)
	require.NoError(t, err)
	require.Equal(t, int64(999999), v)
}

func TestEncodeSemiConstrainedWholeNumber(t *testing.T) {
	lb := int64(0)
	enc, err := aper.EncodeInt(1000, &lb, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0x02, 0x03, 0xe8}, enc.Bytes())

	v, err := aper.DecodeInt(enc.Bytes(), &lb, nil)
	require.NoError(t, err)
	require.Equal(t, int64(1000), v)
}

func TestEncodeUnconstrainedWholeNumberNegative(t *testing.T) {
	enc, err := aper.EncodeInt(-1, nil, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0xff}, enc.Bytes())

	v, err := aper.DecodeInt(enc.Bytes(), nil, nil)
	require.NoError(t, err)
	require.Equal(t, int64(-1), v)
}

func TestEncodeIntegerExtensibleWithinRoot(t *testing.T) {
	lb, ub := int64(0), int64(10)
	e := aper.NewEncoder()
	require.NoError(t, e.EncodeInteger(5, &lb, &ub, true))

	v, err := aper.NewDecoder(e.Bytes()).DecodeInteger(&lb, &ub, true)
	require.NoError(t, err)
	require.Equal(t, int64(5), v)
}

func TestEncodeIntegerExtensibleBeyondRoot(t *testing.T) {
	lb, ub := int64(0), int64(10)
	e := aper.NewEncoder()
	require.NoError(t, e.EncodeInteger(50, &lb, &ub, true))

	v, err := aper.NewDecoder(e.Bytes()).DecodeInteger(&lb, &ub, true)
	require.NoError(t, err)
	require.Equal(t, int64(50), v)
}

func TestEncodeIntValueOutOfRange(t *testing.T) {
	lb, ub := int64(0), int64(10)
	_, err := aper.EncodeInt(11, &lb, &ub)
	require.Error(t, err)
	require.ErrorIs(t, err, aper.ErrValueNotInRange)
}

func TestEncodeIntInvalidRange(t *testing.T) {
	lb, ub := int64(10), int64(0)
	_, err := aper.EncodeInt(5, &lb, &ub)
	require.ErrorIs(t, err, aper.ErrInvalidRange)
}

func TestBoolRoundTrip(t *testing.T) {
	e := aper.NewEncoder()
	require.NoError(t, e.EncodeBool(true))
	require.NoError(t, e.EncodeBool(false))

	d := aper.NewDecoder(e.Bytes())
	v1, err := d.DecodeBool()
	require.NoError(t, err)
	require.True(t, v1)
	v2, err := d.DecodeBool()
	require.NoError(t, err)
	require.False(t, v2)
}
