package aper

import "github.com/quietbit/aper/internal/constraint"

// Enumerated is an ASN.1 ENUMERATED value: an index into a fixed set
// of named values, with an optional extension root boundary. Count is
// the number of root (non-extension) enumerators.
type Enumerated struct {
	Index      uint64
	Count      uint64
	Extensible bool
}

// EncodeAPER writes the index per §14 (constrained integer over the
// root, or an extension-marked normally-small number beyond it). Its
// width comes from Count/Extensible, not from a value/size constraint,
// so c is ignored.
func (v Enumerated) EncodeAPER(e *Encoder, c constraint.Pair) error {
	return e.EncodeEnumerated(v.Index, v.Count, v.Extensible)
}

// DecodeAPER inverts EncodeAPER. Count and Extensible must be set on v
// before calling, since they describe the schema, not the wire value.
func (v *Enumerated) DecodeAPER(d *Decoder, c constraint.Pair) error {
	idx, err := d.DecodeEnumerated(v.Count, v.Extensible)
	if err != nil {
		return err
	}
	v.Index = idx
	return nil
}
