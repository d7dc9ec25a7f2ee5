package aper

import "github.com/quietbit/aper/internal/constraint"

// Null represents the ASN.1 NULL type, whose APER encoding is empty:
// its presence is entirely conveyed by surrounding structure (an
// OPTIONAL bit, a CHOICE index). Grounded on original_source/src/null.rs.
type Null struct{}

// EncodeAPER is a no-op; NULL contributes zero bits. NULL has no
// constrainable width, so c is ignored.
func (Null) EncodeAPER(e *Encoder, c constraint.Pair) error { return nil }

// DecodeAPER is a no-op.
func (n *Null) DecodeAPER(d *Decoder, c constraint.Pair) error { return nil }
