package aper

import "github.com/quietbit/aper/internal/constraint"

// ExtensionMarker is a bool-backed presence flag for the extensibility
// bit of an extensible SEQUENCE, SET, CHOICE or ENUMERATED type. It
// exists as a distinct type, rather than a bare bool, so schema structs
// can tag which field is the extension marker when walked generically.
type ExtensionMarker bool

// EncodeAPER writes the single extension bit. A bare flag bit has no
// constrainable width, so c is ignored.
func (m ExtensionMarker) EncodeAPER(e *Encoder, c constraint.Pair) error {
	if m {
		return e.vec.AppendBit(1)
	}
	return e.vec.AppendBit(0)
}

// DecodeAPER inverts EncodeAPER.
func (m *ExtensionMarker) DecodeAPER(d *Decoder, c constraint.Pair) error {
	bit, err := d.vec.ReadBits(1)
	if err != nil {
		return wrapShortRead(err)
	}
	*m = bit == 1
	return nil
}
