package aper

import "github.com/quietbit/aper/internal/bitvector"

// Encoding is the output of a successful encode: a bit vector plus
// convenient access to its packed bytes. It is what aggregate types
// pass to Encoder.Append when composing sub-encodings produced outside
// the current Encoder (for example, a value encoded independently and
// spliced in).
type Encoding struct {
	vector *bitvector.Vector
}

// Bytes returns the packed byte representation, with the final byte's
// unused bits zero.
func (e Encoding) Bytes() []byte {
	if e.vector == nil {
		return nil
	}
	return e.vector.Bytes()
}

// LenBits returns the exact bit length of the encoding.
func (e Encoding) LenBits() uint64 {
	if e.vector == nil {
		return 0
	}
	return e.vector.LenBits()
}
