package aper

import (
	"github.com/quietbit/aper/internal/bitvector"
	"github.com/quietbit/aper/internal/constraint"
)

// Encoder owns an output bit vector and exposes the APER primitives
// used to build up an Encoding. Grounded on the teacher's
// lib/per/encode.go Encoder; the aligned/unaligned mode flag is
// dropped since this module encodes APER exclusively (spec Non-goals
// exclude UPER).
type Encoder struct {
	vec *bitvector.Vector
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder {
	return &Encoder{vec: bitvector.NewWriter()}
}

// Bytes returns the encoded bytes so far, trimmed to the exact bit
// length with the trailing byte zero-padded.
func (e *Encoder) Bytes() []byte {
	return e.vec.Bytes()
}

// IntoEncoding consumes the Encoder and returns its accumulated
// Encoding.
func (e *Encoder) IntoEncoding() Encoding {
	return Encoding{vector: e.vec}
}

// Append splices another Encoding onto the end of this Encoder's
// output, preserving bit order across any misalignment.
func (e *Encoder) Append(enc Encoding) error {
	if enc.vector == nil {
		return nil
	}
	return e.vec.Concat(enc.vector)
}

// AppendRawBytes appends data verbatim at the current bit offset,
// without a length prefix. Pairs with Decoder.ReadRawBytes to carry an
// open-type payload whose length was already encoded separately.
func (e *Encoder) AppendRawBytes(data []byte) error {
	return e.vec.AppendBytes(data)
}

// Align pads the output to the next byte boundary. Exposed for
// user-level composition when a schema needs an alignment point the
// standard primitives don't already introduce.
func (e *Encoder) Align() error {
	return e.vec.AlignToByte()
}

// 11.5 Encoding of a constrained whole number. See ITU-T X.691 §11.5
// for the full derivation; this implementation follows the ALIGNED
// variant exclusively.
//
//	range == 1                    -> no bits
//	range in [2, 255]              -> bit-field, unaligned
//	range == 256                   -> one octet, aligned
//	range in [257, 65536]          -> two octets, aligned
//	range > 65536                  -> length-determinant-prefixed,
//	                                   minimal octets, aligned
func (e *Encoder) encodeConstrainedWholeNumber(lb, ub, n int64) error {
	vr := ub - lb + 1
	if vr == 1 {
		return nil
	}

	value := uint64(n - lb)

	if vr <= 0xFF {
		return e.vec.AppendBits(smallRangeBits(vr), value)
	}
	if vr == 0x100 {
		if err := e.vec.AlignToByte(); err != nil {
			return err
		}
		return e.vec.AppendBits(8, value)
	}
	if vr <= 0x10000 {
		if err := e.vec.AlignToByte(); err != nil {
			return err
		}
		return e.vec.AppendBits(16, value)
	}

	// 11.5.7.4: indefinite length case. The length determinant's own
	// bounds are [1, octets needed to hold the range], per §13.2.6(a).
	octets := octetsNonNegativeBinaryIntegerLength(value)
	if octets == 0 {
		octets = 1
	}
	var (
		octetsRange = uint64(octetsNonNegativeBinaryIntegerLength(uint64(ub - lb)))
		lbRange     = uint64(1)
	)
	if _, _, err := e.encodeLengthDeterminant(uint64(octets), &lbRange, &octetsRange); err != nil {
		return err
	}
	if err := e.vec.AlignToByte(); err != nil {
		return err
	}
	return e.vec.AppendBits(uint8(octets*8), value)
}

// 11.6 Encoding of a normally small non-negative whole number.
func (e *Encoder) encodeNormallySmallNonNegativeWholeNumber(n uint64) error {
	if n <= 63 {
		if err := e.vec.AppendBit(0); err != nil {
			return err
		}
		return e.vec.AppendBits(6, n)
	}
	if err := e.vec.AppendBit(1); err != nil {
		return err
	}
	return e.encodeSemiConstrainedWholeNumber(0, int64(n))
}

// 11.7 Encoding of a semi-constrained whole number: (n - lb) as a
// non-negative-binary-integer in the minimum octets, length-prefixed,
// octet-aligned.
func (e *Encoder) encodeSemiConstrainedWholeNumber(lb, n int64) error {
	octets := octetsNonNegativeBinaryIntegerLength(uint64(n - lb))
	if octets == 0 {
		octets = 1
	}
	if err := e.vec.AlignToByte(); err != nil {
		return err
	}
	if _, _, err := e.encodeLengthDeterminant(uint64(octets), nil, nil); err != nil {
		return err
	}
	return e.vec.AppendBits(uint8(octets*8), uint64(n-lb))
}

// 11.8 Encoding of an unconstrained whole number: n as a
// 2's-complement-binary-integer in the minimum octets, length-prefixed,
// octet-aligned.
func (e *Encoder) encodeUnconstrainedWholeNumber(n int64) error {
	octets := octetsTwosComplementBinaryInteger(n)
	if octets == 0 {
		octets = 1
	}
	if err := e.vec.AlignToByte(); err != nil {
		return err
	}
	if _, _, err := e.encodeLengthDeterminant(uint64(octets), nil, nil); err != nil {
		return err
	}
	return e.vec.AppendBits(uint8(octets*8), uint64(n))
}

// EncodeInt encodes a bare integer under an optional [lb, ub]
// constraint, with no extension bit. This is the free-standing
// primitive named in spec section 6; EncodeInteger builds on it to add
// extensibility.
func EncodeInt(value int64, lb, ub *int64) (Encoding, error) {
	e := NewEncoder()
	if err := e.encodeInt(value, lb, ub); err != nil {
		return Encoding{}, err
	}
	return e.IntoEncoding(), nil
}

func (e *Encoder) encodeInt(value int64, lb, ub *int64) error {
	if lb != nil && ub != nil {
		if *lb > *ub {
			return ErrInvalidRange
		}
		if value < *lb || value > *ub {
			return &RangeError{Kind: ErrValueNotInRange, Value: value, Lower: lb, Upper: ub}
		}
		return e.encodeConstrainedWholeNumber(*lb, *ub, value)
	}
	if lb != nil {
		if value < *lb {
			return &RangeError{Kind: ErrValueNotInRange, Value: value, Lower: lb}
		}
		return e.encodeSemiConstrainedWholeNumber(*lb, value)
	}
	return e.encodeUnconstrainedWholeNumber(value)
}

// EncodeInteger encodes value per 13 Encoding the integer type: if
// extensible, a leading bit signals whether value lies outside
// [lb, ub], in which case it is encoded as an unconstrained whole
// number regardless of lb/ub.
func (e *Encoder) EncodeInteger(value int64, lb, ub *int64, extensible bool) error {
	if extensible {
		extended := (lb != nil && value < *lb) || (ub != nil && value > *ub)
		if extended {
			if err := e.vec.AppendBit(1); err != nil {
				return err
			}
			return e.encodeUnconstrainedWholeNumber(value)
		}
		if err := e.vec.AppendBit(0); err != nil {
			return err
		}
	}

	if lb != nil && ub != nil && *lb == *ub {
		return nil
	}
	return e.encodeInt(value, lb, ub)
}

// encodeLengthDeterminant applies the general length-determinant rules
// of §11.9, constrained by [lb, ub] when both are given and ub is below
// maxConstrainedLength (64K). Returns the remaining, not-yet-encoded
// portion of n, and whether the determinant just written was itself a
// fragment marker — the caller must keep looping (encoding a further,
// possibly-empty determinant) whenever this is true, since ITU-T
// X.691 §11.9.3.8.3's own NOTE requires a fragment stream to always
// close with a non-fragment determinant, even a zero-valued one, when
// the total length lands exactly on a fragment-unit boundary.
func (e *Encoder) encodeLengthDeterminant(n uint64, lb, ub *uint64) (uint64, bool, error) {
	if lb != nil && ub != nil && *ub < maxConstrainedLength {
		return 0, false, e.encodeConstrainedWholeNumber(int64(*lb), int64(*ub), int64(n))
	}
	return e.encodeUnconstrainedLength(n)
}

// encodeUnconstrainedLength implements the short/long/fragmented forms
// of §11.9.3.5-11.9.3.8. The bool result reports whether a fragment
// marker (top two bits 11) was written; it is never true together with
// remaining == 0 meaning "done" — a fragment marker always demands one
// more determinant afterward, even for the remaining == 0 case.
func (e *Encoder) encodeUnconstrainedLength(n uint64) (uint64, bool, error) {
	if err := e.vec.AlignToByte(); err != nil {
		return 0, false, err
	}

	if n <= 127 {
		return 0, false, e.vec.AppendBits(8, n)
	}
	if n < fragmentUnit {
		return 0, false, e.vec.AppendBits(16, (1<<15)|n)
	}

	m := calculateFragmentSize(n)
	k := m / fragmentUnit
	if err := e.vec.AppendBits(8, (3<<6)|k); err != nil {
		return 0, false, err
	}
	return n - m, true, nil
}

// calculateFragmentSize picks the largest fragment (1-4 units of 16K)
// that does not exceed n, per §11.9.3.8.1.
func calculateFragmentSize(n uint64) uint64 {
	switch {
	case n >= 4*fragmentUnit:
		return 4 * fragmentUnit
	case n >= 3*fragmentUnit:
		return 3 * fragmentUnit
	case n >= 2*fragmentUnit:
		return 2 * fragmentUnit
	default:
		return fragmentUnit
	}
}

// EncodeLength encodes a length determinant for a container, applying
// size as the length's own constraint when present. A fully
// constrained size whose upper bound is below 65536 uses the constrained-integer
// rules of §11.5; otherwise the general length-determinant procedure of
// §11.9 applies (with fragmentation as needed). The returned bool
// mirrors Decoder.DecodeLength's "more" result: true means the caller
// must encode at least one further determinant for the remaining
// count, even if that count is zero.
func (e *Encoder) EncodeLength(n uint64, size *constraint.Constraint) (uint64, bool, error) {
	var lb, ub *uint64
	if size != nil && size.FullyConstrained() {
		l, u := uint64(*size.Lower), uint64(*size.Upper)
		lb, ub = &l, &u
	}
	return e.encodeLengthDeterminant(n, lb, ub)
}

// EncodeBool appends the single bit encoding of a boolean value. §12.
func (e *Encoder) EncodeBool(value bool) error {
	if value {
		return e.vec.AppendBit(1)
	}
	return e.vec.AppendBit(0)
}

// EncodeEnumerated encodes an enumeration index in [0, count) as
// specified in §14: a constrained integer when not extensible or
// within the extension root, otherwise an extension bit followed by a
// normally-small non-negative whole number for the extension index.
func (e *Encoder) EncodeEnumerated(index, count uint64, extensible bool) error {
	if extensible {
		if index >= count {
			if err := e.vec.AppendBit(1); err != nil {
				return err
			}
			return e.encodeNormallySmallNonNegativeWholeNumber(index - count)
		}
		if err := e.vec.AppendBit(0); err != nil {
			return err
		}
	}
	if index >= count {
		return &ChoiceError{Index: index, Count: count}
	}
	lb, ub := int64(0), int64(count)-1
	return e.encodeConstrainedWholeNumber(lb, ub, int64(index))
}

// EncodeChoiceHeader encodes a CHOICE alternative selector: an
// extension bit (if extensible) followed by the alternative index as a
// constrained integer over the root alternatives. The caller encodes
// the selected alternative's body afterward. §4.6 of the spec.
func (e *Encoder) EncodeChoiceHeader(index, count uint64, extensible bool) error {
	if index >= count {
		return &ChoiceError{Index: index, Count: count}
	}
	if extensible {
		if err := e.vec.AppendBit(0); err != nil {
			return err
		}
	}
	lb, ub := int64(0), int64(count)-1
	return e.encodeConstrainedWholeNumber(lb, ub, int64(index))
}

// EncodeChoiceExtension encodes the extension-bit-set case of a CHOICE
// header, followed by the extension alternative's normally-small index.
// The caller then encodes the selected extension alternative's body as
// an open-type (its own length-prefixed encoding).
func (e *Encoder) EncodeChoiceExtension(extensionIndex uint64) error {
	if err := e.vec.AppendBit(1); err != nil {
		return err
	}
	return e.encodeNormallySmallNonNegativeWholeNumber(extensionIndex)
}

// EncodeSequencePreamble encodes the leading bits of an extensible
// and/or optional-field-bearing SEQUENCE or SET: an extension marker
// bit (only if extensible), then the presence bitmap for OPTIONAL/
// DEFAULT fields, most significant bit first. §11.9.3.4 / spec §4.4.
func (e *Encoder) EncodeSequencePreamble(present []bool, extensible bool, hasExtensions bool) error {
	if extensible {
		if hasExtensions {
			if err := e.vec.AppendBit(1); err != nil {
				return err
			}
		} else {
			if err := e.vec.AppendBit(0); err != nil {
				return err
			}
		}
	}
	for _, p := range present {
		bit := uint64(0)
		if p {
			bit = 1
		}
		if err := e.vec.AppendBit(bit); err != nil {
			return err
		}
	}
	return nil
}
