package aper

import "github.com/quietbit/aper/internal/constraint"

// OctetString is an ASN.1 OCTET STRING value together with the size
// constraint that governs its length-determinant encoding. Grounded on
// the teacher's lib/per/encode.go / decode.go octet-string fragment
// handling (16K-element fragmentation, §11.9/§16), re-parametrized by
// the internal/constraint model instead of inline min/max arguments.
type OctetString struct {
	Data []byte
	Size *constraint.Constraint
}

// EncodeAPER writes the length determinant(s) followed by the octets,
// fragmenting at 16K-octet boundaries when Size is absent, semi-
// constrained, or its upper bound reaches the constrained-length ceiling.
// Content is byte-aligned unconditionally (no small-fixed-size
// exception, unlike BitString): the length determinant may leave the
// cursor mid-byte — e.g. a bounded, non-fixed size under 256 encodes
// as an unaligned bit-field — so an explicit Align always runs before
// the octets themselves.
//
// The loop continues on the encoder's "more" result, not on
// remaining == 0: a fragment stream whose total length is an exact
// multiple of the 16K fragment unit still needs a terminal non-
// fragment determinant (even a zero-valued one) before it's done, per
// §11.9.3.8.3's own NOTE.
//
// The size bounds check runs once against the full data length before
// any fragment is written, not per fragmentation-loop iteration:
// EncodeLength's own n shrinks to the remaining count on each pass, so
// checking it there would reject valid fragmented values whose
// remainder falls outside a size constraint that only bounds the total.
func (o OctetString) EncodeAPER(e *Encoder, c constraint.Pair) error {
	size := Effective(o, c).Size
	count := uint64(len(o.Data))
	if size != nil && !size.Contains(int64(count)) {
		return &RangeError{Kind: ErrSizeNotInRange, Value: int64(count), Lower: size.Lower, Upper: size.Upper}
	}
	offset := uint64(0)
	for {
		remaining, more, err := e.EncodeLength(count, size)
		if err != nil {
			return err
		}
		if err := e.Align(); err != nil {
			return err
		}
		fragment := count - remaining
		if err := e.vec.AppendBytes(o.Data[offset : offset+fragment]); err != nil {
			return err
		}
		offset += fragment
		if !more {
			return nil
		}
		count = remaining
	}
}

// DecodeAPER inverts EncodeAPER, growing Data as fragments are read. A
// fixed-size constraint (Lower == Upper) needs no special case for the
// length determinant itself: DecodeLength's constrained branch reads
// zero bits and returns the fixed count directly, so the loop below
// runs exactly once. The content is still always realigned, since a
// zero-bit length determinant does not itself guarantee the cursor was
// already aligned coming in.
func (o *OctetString) DecodeAPER(d *Decoder, c constraint.Pair) error {
	size := Effective(o, c).Size
	var result []byte
	for {
		n, more, err := d.DecodeLength(size)
		if err != nil {
			return err
		}
		if err := d.Align(); err != nil {
			return err
		}
		chunk, err := d.vec.ReadBytesN(int(n))
		if err != nil {
			return wrapShortRead(err)
		}
		result = append(result, chunk...)
		if !more {
			break
		}
	}
	if size != nil && !size.Contains(int64(len(result))) {
		return &RangeError{Kind: ErrInvalidSize, Value: int64(len(result)), Lower: size.Lower, Upper: size.Upper}
	}
	o.Data = result
	return nil
}

// DefaultConstraints reports the size constraint carried by the value.
func (o OctetString) DefaultConstraints() constraint.Pair {
	if o.Size == nil {
		return constraint.Unconstrained
	}
	return constraint.WithSize(*o.Size)
}
