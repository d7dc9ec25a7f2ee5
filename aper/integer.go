package aper

import (
	"math"

	"github.com/quietbit/aper/internal/constraint"
)

// Int8, Int16, Int32, Uint8, Uint16 and Uint32 are fixed-width integer
// wrappers whose encoded range is always the Go type's own [MIN, MAX],
// never a caller-supplied override. Grounded on original_source/src/
// integer.rs's int_impl! macro, which generates identical to_aper/
// from_aper bodies for i8/i16/i32/u8/u16/u32 and discards the
// Constraints parameter its trait methods receive — the type itself is
// the only source of truth for its width, so c is ignored here too.
type (
	Int8   int8
	Int16  int16
	Int32  int32
	Uint8  uint8
	Uint16 uint16
	Uint32 uint32
)

func (v Int8) EncodeAPER(e *Encoder, c constraint.Pair) error {
	lb, ub := int64(math.MinInt8), int64(math.MaxInt8)
	return e.EncodeInteger(int64(v), &lb, &ub, false)
}

func (v *Int8) DecodeAPER(d *Decoder, c constraint.Pair) error {
	lb, ub := int64(math.MinInt8), int64(math.MaxInt8)
	n, err := d.DecodeInteger(&lb, &ub, false)
	if err != nil {
		return err
	}
	*v = Int8(n)
	return nil
}

func (v Int16) EncodeAPER(e *Encoder, c constraint.Pair) error {
	lb, ub := int64(math.MinInt16), int64(math.MaxInt16)
	return e.EncodeInteger(int64(v), &lb, &ub, false)
}

func (v *Int16) DecodeAPER(d *Decoder, c constraint.Pair) error {
	lb, ub := int64(math.MinInt16), int64(math.MaxInt16)
	n, err := d.DecodeInteger(&lb, &ub, false)
	if err != nil {
		return err
	}
	*v = Int16(n)
	return nil
}

func (v Int32) EncodeAPER(e *Encoder, c constraint.Pair) error {
	lb, ub := int64(math.MinInt32), int64(math.MaxInt32)
	return e.EncodeInteger(int64(v), &lb, &ub, false)
}

func (v *Int32) DecodeAPER(d *Decoder, c constraint.Pair) error {
	lb, ub := int64(math.MinInt32), int64(math.MaxInt32)
	n, err := d.DecodeInteger(&lb, &ub, false)
	if err != nil {
		return err
	}
	*v = Int32(n)
	return nil
}

func (v Uint8) EncodeAPER(e *Encoder, c constraint.Pair) error {
	lb, ub := int64(0), int64(math.MaxUint8)
	return e.EncodeInteger(int64(v), &lb, &ub, false)
}

func (v *Uint8) DecodeAPER(d *Decoder, c constraint.Pair) error {
	lb, ub := int64(0), int64(math.MaxUint8)
	n, err := d.DecodeInteger(&lb, &ub, false)
	if err != nil {
		return err
	}
	*v = Uint8(n)
	return nil
}

func (v Uint16) EncodeAPER(e *Encoder, c constraint.Pair) error {
	lb, ub := int64(0), int64(math.MaxUint16)
	return e.EncodeInteger(int64(v), &lb, &ub, false)
}

func (v *Uint16) DecodeAPER(d *Decoder, c constraint.Pair) error {
	lb, ub := int64(0), int64(math.MaxUint16)
	n, err := d.DecodeInteger(&lb, &ub, false)
	if err != nil {
		return err
	}
	*v = Uint16(n)
	return nil
}

func (v Uint32) EncodeAPER(e *Encoder, c constraint.Pair) error {
	lb, ub := int64(0), int64(math.MaxUint32)
	return e.EncodeInteger(int64(v), &lb, &ub, false)
}

func (v *Uint32) DecodeAPER(d *Decoder, c constraint.Pair) error {
	lb, ub := int64(0), int64(math.MaxUint32)
	n, err := d.DecodeInteger(&lb, &ub, false)
	if err != nil {
		return err
	}
	*v = Uint32(n)
	return nil
}
