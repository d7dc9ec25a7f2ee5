package aper

import "github.com/quietbit/aper/internal/constraint"

// BitString is an ASN.1 BIT STRING value: packed octets plus the exact
// bit length, since the final octet may be partially filled. Grounded
// on the teacher's bit-string fragment handling, generalized the same
// way as OctetString.
type BitString struct {
	Bytes     []byte
	BitLength uint64
	Size      *constraint.Constraint
}

// appendPackedBits writes the first nbits bits of data, most
// significant bit of each octet first, without requiring nbits to be a
// multiple of 8.
func (e *Encoder) appendPackedBits(data []byte, nbits uint64) error {
	full := nbits / 8
	rem := nbits % 8
	if full > 0 {
		if err := e.vec.AppendBytes(data[:full]); err != nil {
			return err
		}
	}
	if rem > 0 {
		v := uint64(data[full]) >> (8 - rem)
		if err := e.vec.AppendBits(uint8(rem), v); err != nil {
			return err
		}
	}
	return nil
}

// readPackedBits reads nbits bits into a minimal byte slice, zero-
// padding the low-order bits of the final octet.
func (d *Decoder) readPackedBits(nbits uint64) ([]byte, error) {
	full := nbits / 8
	rem := nbits % 8
	result := make([]byte, 0, (nbits+7)/8)
	if full > 0 {
		chunk, err := d.vec.ReadBytesN(int(full))
		if err != nil {
			return nil, wrapShortRead(err)
		}
		result = append(result, chunk...)
	}
	if rem > 0 {
		v, err := d.vec.ReadBits(uint8(rem))
		if err != nil {
			return nil, wrapShortRead(err)
		}
		result = append(result, byte(v<<(8-rem)))
	}
	return result, nil
}

// isSmallFixedBitSize reports whether size names a single fixed bit
// length of 16 or fewer bits — the one case where bit-string content
// stays unaligned after its (zero-bit) length determinant.
func isSmallFixedBitSize(size *constraint.Constraint) bool {
	if size == nil || !size.FullyConstrained() {
		return false
	}
	return *size.Lower == *size.Upper && *size.Upper <= 16
}

// EncodeAPER writes the length determinant(s), in bits, followed by the
// packed bit content, fragmenting at 16K-bit boundaries per the same
// rule as OctetString. Content stays unaligned only when Size names a
// single fixed length of 16 bits or fewer; every other size (absent,
// semi-constrained, bounded-but-not-fixed, or fixed but wider than 16
// bits) aligns to the next byte boundary before the bits are written.
//
// As with OctetString, the loop continues on the encoder's "more"
// result rather than remaining == 0, so a bit length landing exactly
// on a fragment-unit boundary still gets its mandatory terminal
// determinant.
//
// The size bounds check runs once against the total bit length before
// the loop starts, for the same reason as OctetString: per-iteration
// remaining counts are not themselves meaningful against a size
// constraint on the whole string.
func (b BitString) EncodeAPER(e *Encoder, c constraint.Pair) error {
	size := Effective(b, c).Size
	if size != nil && !size.Contains(int64(b.BitLength)) {
		return &RangeError{Kind: ErrSizeNotInRange, Value: int64(b.BitLength), Lower: size.Lower, Upper: size.Upper}
	}
	small := isSmallFixedBitSize(size)
	count := b.BitLength
	offset := uint64(0)
	for {
		remaining, more, err := e.EncodeLength(count, size)
		if err != nil {
			return err
		}
		if !small {
			if err := e.Align(); err != nil {
				return err
			}
		}
		fragment := count - remaining
		if err := e.appendPackedBits(b.Bytes[offset/8:], fragment); err != nil {
			return err
		}
		offset += fragment
		if !more {
			return nil
		}
		count = remaining
	}
}

// DecodeAPER inverts EncodeAPER. As with OctetString, a fixed-size
// constraint needs no special case for the length determinant itself:
// the constrained branch reads zero bits and the loop runs exactly
// once. The alignment call mirrors EncodeAPER's isSmallFixedBitSize
// exception.
func (b *BitString) DecodeAPER(d *Decoder, c constraint.Pair) error {
	size := Effective(b, c).Size
	small := isSmallFixedBitSize(size)
	var result []byte
	var total uint64
	for {
		n, more, err := d.DecodeLength(size)
		if err != nil {
			return err
		}
		if !small {
			if err := d.Align(); err != nil {
				return err
			}
		}
		chunk, err := d.readPackedBits(n)
		if err != nil {
			return err
		}
		result = append(result, chunk...)
		total += n
		if !more {
			break
		}
	}
	if size != nil && !size.Contains(int64(total)) {
		return &RangeError{Kind: ErrInvalidSize, Value: int64(total), Lower: size.Lower, Upper: size.Upper}
	}
	b.Bytes = result
	b.BitLength = total
	return nil
}

// DefaultConstraints reports the size constraint carried by the value.
func (b BitString) DefaultConstraints() constraint.Pair {
	if b.Size == nil {
		return constraint.Unconstrained
	}
	return constraint.WithSize(*b.Size)
}
