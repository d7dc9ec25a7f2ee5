package aper

import (
	"github.com/quietbit/aper/internal/bitvector"
	"github.com/quietbit/aper/internal/constraint"
)

// Decoder wraps a byte slice with a read cursor and exposes the APER
// primitives that invert Encoder's. Grounded on the teacher's
// lib/per/decode.go Decoder.
type Decoder struct {
	vec *bitvector.Vector
}

// NewDecoder wraps data for decoding, starting at bit 0.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{vec: bitvector.NewReader(data)}
}

// ReadOffset returns the number of bits consumed so far.
func (d *Decoder) ReadOffset() uint64 {
	return d.vec.ReadOffset()
}

// Align skips to the next byte boundary, the decode counterpart of
// Encoder.Align.
func (d *Decoder) Align() error {
	return d.vec.Advance()
}

// Mark captures the current read position so a failed, multi-step
// decode (e.g. a field whose value violates a constraint after its
// bits are already consumed) can be rolled back atomically.
func (d *Decoder) Mark() bitvector.Snapshot {
	return d.vec.Mark()
}

// Reset restores a position previously captured with Mark.
func (d *Decoder) Reset(s bitvector.Snapshot) {
	d.vec.Reset(s)
}

// ReadRawBytes reads n bytes verbatim from the current bit offset,
// without interpreting them. Used to carry an open-type payload (a
// CHOICE extension alternative, an unrecognized SEQUENCE extension
// addition) through to a nested Decoder.
func (d *Decoder) ReadRawBytes(n int) ([]byte, error) {
	b, err := d.vec.ReadBytesN(n)
	if err != nil {
		return nil, wrapShortRead(err)
	}
	return b, nil
}

func wrapShortRead(err error) error {
	if err == nil {
		return nil
	}
	if bitvector.ErrNotEnoughBits(err) {
		return ErrNotEnoughBits
	}
	return err
}

// decodeConstrainedWholeNumber inverts Encoder.encodeConstrainedWholeNumber.
func (d *Decoder) decodeConstrainedWholeNumber(lb, ub int64) (int64, error) {
	vr := ub - lb + 1
	if vr == 1 {
		return lb, nil
	}

	if vr <= 0xFF {
		v, err := d.vec.ReadBits(smallRangeBits(vr))
		if err != nil {
			return 0, wrapShortRead(err)
		}
		return lb + int64(v), nil
	}
	if vr == 0x100 {
		if err := d.vec.Advance(); err != nil {
			return 0, err
		}
		v, err := d.vec.ReadBits(8)
		if err != nil {
			return 0, wrapShortRead(err)
		}
		return lb + int64(v), nil
	}
	if vr <= 0x10000 {
		if err := d.vec.Advance(); err != nil {
			return 0, err
		}
		v, err := d.vec.ReadBits(16)
		if err != nil {
			return 0, wrapShortRead(err)
		}
		return lb + int64(v), nil
	}

	octetsRange := uint64(octetsNonNegativeBinaryIntegerLength(uint64(ub - lb)))
	lbRange := uint64(1)
	octets, _, err := d.decodeLengthDeterminant(&lbRange, &octetsRange)
	if err != nil {
		return 0, err
	}
	if err := d.vec.Advance(); err != nil {
		return 0, err
	}
	v, err := d.vec.ReadBits(uint8(octets * 8))
	if err != nil {
		return 0, wrapShortRead(err)
	}
	return lb + int64(v), nil
}

// decodeNormallySmallNonNegativeWholeNumber inverts the encoder's
// method of the same name.
func (d *Decoder) decodeNormallySmallNonNegativeWholeNumber() (uint64, error) {
	bit, err := d.vec.ReadBits(1)
	if err != nil {
		return 0, wrapShortRead(err)
	}
	if bit == 0 {
		v, err := d.vec.ReadBits(6)
		if err != nil {
			return 0, wrapShortRead(err)
		}
		return v, nil
	}
	v, err := d.decodeSemiConstrainedWholeNumber(0)
	if err != nil {
		return 0, err
	}
	return uint64(v), nil
}

// decodeSemiConstrainedWholeNumber inverts Encoder.encodeSemiConstrainedWholeNumber.
func (d *Decoder) decodeSemiConstrainedWholeNumber(lb int64) (int64, error) {
	if err := d.vec.Advance(); err != nil {
		return 0, err
	}
	octets, _, err := d.decodeLengthDeterminant(nil, nil)
	if err != nil {
		return 0, err
	}
	v, err := d.vec.ReadBits(uint8(octets * 8))
	if err != nil {
		return 0, wrapShortRead(err)
	}
	return lb + int64(v), nil
}

// decodeUnconstrainedWholeNumber inverts Encoder.encodeUnconstrainedWholeNumber.
func (d *Decoder) decodeUnconstrainedWholeNumber() (int64, error) {
	if err := d.vec.Advance(); err != nil {
		return 0, err
	}
	octets, _, err := d.decodeLengthDeterminant(nil, nil)
	if err != nil {
		return 0, err
	}
	n := uint8(octets * 8)
	v, err := d.vec.ReadBits(n)
	if err != nil {
		return 0, wrapShortRead(err)
	}
	// Sign-extend from the octet width actually read.
	if n < 64 && v&(1<<(n-1)) != 0 {
		v |= ^uint64(0) << n
	}
	return int64(v), nil
}

// DecodeInt decodes a bare integer under an optional [lb, ub]
// constraint, the inverse of EncodeInt.
func DecodeInt(data []byte, lb, ub *int64) (int64, error) {
	d := NewDecoder(data)
	return d.decodeInt(lb, ub)
}

func (d *Decoder) decodeInt(lb, ub *int64) (int64, error) {
	if lb != nil && ub != nil {
		if *lb > *ub {
			return 0, ErrInvalidRange
		}
		return d.decodeConstrainedWholeNumber(*lb, *ub)
	}
	if lb != nil {
		return d.decodeSemiConstrainedWholeNumber(*lb)
	}
	return d.decodeUnconstrainedWholeNumber()
}

// DecodeInteger inverts Encoder.EncodeInteger.
func (d *Decoder) DecodeInteger(lb, ub *int64, extensible bool) (int64, error) {
	if extensible {
		bit, err := d.vec.ReadBits(1)
		if err != nil {
			return 0, wrapShortRead(err)
		}
		if bit == 1 {
			return d.decodeUnconstrainedWholeNumber()
		}
	}

	if lb != nil && ub != nil && *lb == *ub {
		return *lb, nil
	}
	return d.decodeInt(lb, ub)
}

// decodeLengthDeterminant inverts Encoder.encodeLengthDeterminant.
// Returns the decoded count, whether more fragments follow, and error.
func (d *Decoder) decodeLengthDeterminant(lb, ub *uint64) (uint64, bool, error) {
	if lb != nil && ub != nil && *ub < maxConstrainedLength {
		n, err := d.decodeConstrainedWholeNumber(int64(*lb), int64(*ub))
		return uint64(n), false, err
	}
	return d.decodeUnconstrainedLength()
}

// decodeUnconstrainedLength inverts Encoder.encodeUnconstrainedLength.
func (d *Decoder) decodeUnconstrainedLength() (uint64, bool, error) {
	if err := d.vec.Advance(); err != nil {
		return 0, false, err
	}

	first, err := d.vec.ReadBits(8)
	if err != nil {
		return 0, false, wrapShortRead(err)
	}

	if first&0x80 == 0 {
		return first, false, nil
	}
	if first&0xC0 == 0x80 {
		second, err := d.vec.ReadBits(8)
		if err != nil {
			return 0, false, wrapShortRead(err)
		}
		return ((first &^ 0x80) << 8) | second, false, nil
	}
	if first&0xC0 == 0xC0 {
		k := first & 0x3F
		if k < 1 || k > 4 {
			return 0, false, ErrMalformed
		}
		return k * fragmentUnit, true, nil
	}
	return 0, false, ErrMalformed
}

// DecodeLength inverts Encoder.EncodeLength.
func (d *Decoder) DecodeLength(size *constraint.Constraint) (uint64, bool, error) {
	var lb, ub *uint64
	if size != nil && size.FullyConstrained() {
		l, u := uint64(*size.Lower), uint64(*size.Upper)
		lb, ub = &l, &u
	}
	return d.decodeLengthDeterminant(lb, ub)
}

// DecodeBool inverts Encoder.EncodeBool.
func (d *Decoder) DecodeBool() (bool, error) {
	v, err := d.vec.ReadBits(1)
	if err != nil {
		return false, wrapShortRead(err)
	}
	return v == 1, nil
}

// DecodeEnumerated inverts Encoder.EncodeEnumerated.
func (d *Decoder) DecodeEnumerated(count uint64, extensible bool) (uint64, error) {
	if extensible {
		bit, err := d.vec.ReadBits(1)
		if err != nil {
			return 0, wrapShortRead(err)
		}
		if bit == 1 {
			ext, err := d.decodeNormallySmallNonNegativeWholeNumber()
			if err != nil {
				return 0, err
			}
			return count + ext, nil
		}
	}
	if count == 0 {
		return 0, &ChoiceError{Index: 0, Count: 0}
	}
	v, err := d.decodeConstrainedWholeNumber(0, int64(count)-1)
	if err != nil {
		return 0, err
	}
	return uint64(v), nil
}

// DecodeChoiceHeader inverts Encoder.EncodeChoiceHeader /
// EncodeChoiceExtension: it returns the decoded index, and extended
// reports whether the bit-stream selected an extension alternative (in
// which case index is the extension index, not a root-alternative
// index — the caller is responsible for interpreting it as such and
// decoding the open-type body).
func (d *Decoder) DecodeChoiceHeader(count uint64, extensible bool) (index uint64, extended bool, err error) {
	if extensible {
		bit, rerr := d.vec.ReadBits(1)
		if rerr != nil {
			return 0, false, wrapShortRead(rerr)
		}
		if bit == 1 {
			ext, rerr := d.decodeNormallySmallNonNegativeWholeNumber()
			if rerr != nil {
				return 0, false, rerr
			}
			return ext, true, nil
		}
	}
	if count == 0 {
		return 0, false, &ChoiceError{Index: 0, Count: 0}
	}
	v, rerr := d.decodeConstrainedWholeNumber(0, int64(count)-1)
	if rerr != nil {
		return 0, false, rerr
	}
	return uint64(v), false, nil
}

// DecodeSequencePreamble inverts Encoder.EncodeSequencePreamble.
// numOptional is the number of OPTIONAL/DEFAULT fields in the root.
func (d *Decoder) DecodeSequencePreamble(numOptional int, extensible bool) (present []bool, hasExtensions bool, err error) {
	if extensible {
		bit, rerr := d.vec.ReadBits(1)
		if rerr != nil {
			return nil, false, wrapShortRead(rerr)
		}
		hasExtensions = bit == 1
	}
	if numOptional > 0 {
		present = make([]bool, numOptional)
		for i := range present {
			bit, rerr := d.vec.ReadBits(1)
			if rerr != nil {
				return nil, false, wrapShortRead(rerr)
			}
			present[i] = bit == 1
		}
	}
	return present, hasExtensions, nil
}
