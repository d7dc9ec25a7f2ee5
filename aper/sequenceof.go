package aper

import "github.com/quietbit/aper/internal/constraint"

// SequenceOf encodes a SEQUENCE OF/SET OF element list. T carries its
// own EncodeAPER with a value receiver; PT constrains *T to implement
// DecodeAPER, mirroring the value-receiver-encode/pointer-receiver-
// decode split used throughout this package (BitString, OctetString).
// Grounded on original_source/src/sequence_of.rs's
// `impl<T: APerEncode> APerEncode for Vec<T>`, translated from Rust
// trait bounds to Go's two-type-parameter idiom since Go generics
// cannot express "T and *T both satisfy different interfaces" with one
// parameter.
type SequenceOf[T any, PT interface {
	*T
	Decodable
}] struct {
	Items []T
	Size  *constraint.Constraint
}

// EncodeAPER writes the element-count length determinant, fragmenting
// at 16K-element boundaries, then each element's own encoding in turn.
// Elements are encoded with no constraint override of their own — a
// SEQUENCE OF's element type carries whatever default constraints it
// declares itself.
//
// The loop continues on the encoder's "more" result rather than
// remaining == 0: an element count landing exactly on a fragment-unit
// boundary still needs its mandatory terminal determinant.
//
// The size bounds check runs once against the full element count
// before the loop starts, for the same reason as OctetString.
func (s SequenceOf[T, PT]) EncodeAPER(e *Encoder, c constraint.Pair) error {
	size := Effective(s, c).Size
	count := uint64(len(s.Items))
	if size != nil && !size.Contains(int64(count)) {
		return &RangeError{Kind: ErrSizeNotInRange, Value: int64(count), Lower: size.Lower, Upper: size.Upper}
	}
	offset := uint64(0)
	for {
		remaining, more, err := e.EncodeLength(count, size)
		if err != nil {
			return err
		}
		fragment := count - remaining
		for i := uint64(0); i < fragment; i++ {
			item := s.Items[offset+i]
			enc, ok := any(item).(Encodable)
			if !ok {
				return ErrMalformed
			}
			if err := enc.EncodeAPER(e, constraint.Unconstrained); err != nil {
				return err
			}
		}
		offset += fragment
		if !more {
			return nil
		}
		count = remaining
	}
}

// DecodeAPER inverts EncodeAPER.
func (s *SequenceOf[T, PT]) DecodeAPER(d *Decoder, c constraint.Pair) error {
	size := Effective(s, c).Size
	var result []T
	for {
		n, more, err := d.DecodeLength(size)
		if err != nil {
			return err
		}
		for i := uint64(0); i < n; i++ {
			var item T
			if err := PT(&item).DecodeAPER(d, constraint.Unconstrained); err != nil {
				return err
			}
			result = append(result, item)
		}
		if !more {
			break
		}
	}
	if size != nil && !size.Contains(int64(len(result))) {
		return &RangeError{Kind: ErrInvalidSize, Value: int64(len(result)), Lower: size.Lower, Upper: size.Upper}
	}
	s.Items = result
	return nil
}

// DefaultConstraints reports the size constraint carried by the value.
func (s SequenceOf[T, PT]) DefaultConstraints() constraint.Pair {
	if s.Size == nil {
		return constraint.Unconstrained
	}
	return constraint.WithSize(*s.Size)
}
