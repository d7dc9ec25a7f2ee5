package aper

import "github.com/quietbit/aper/internal/constraint"

// Encodable is implemented by any type that knows how to append its own
// APER encoding onto an Encoder. Grounded on original_source's
// APerEncode trait (src/lib.rs, src/encode.rs), re-expressed as a Go
// interface rather than a trait with an associated const: the constant
// CONSTRAINTS becomes the Constrained interface below, since Go has no
// associated-const equivalent that a generic function could dispatch on
// without reflection. c carries the caller's constraint override, if
// any; see Effective.
type Encodable interface {
	EncodeAPER(e *Encoder, c constraint.Pair) error
}

// Decodable is implemented by any type that knows how to populate
// itself by consuming bits from a Decoder. Implementations should
// treat a mid-decode failure as fatal to the whole value; callers that
// need to retry alternatives (CHOICE) should Decoder.Mark before
// attempting each alternative and Decoder.Reset on failure.
type Decodable interface {
	DecodeAPER(d *Decoder, c constraint.Pair) error
}

// Constrained is implemented by types whose encoding width depends on a
// declared value or size constraint, mirroring original_source's
// per-type CONSTRAINTS constant. Types with no natural constraint
// (e.g. BOOLEAN, NULL) do not implement it.
type Constrained interface {
	DefaultConstraints() constraint.Pair
}

// Effective resolves the constraint pair a call site should encode or
// decode under: an explicit, non-empty override always wins; otherwise
// v's own declared default applies if v implements Constrained;
// otherwise the value is unconstrained. This is the field-overrides-
// type-default rule a schema's composition relies on — a field
// declared with a tighter size or value constraint than its element
// type's own default takes precedence at that call site only.
func Effective(v any, c constraint.Pair) constraint.Pair {
	if c.Value != nil || c.Size != nil {
		return c
	}
	if cst, ok := v.(Constrained); ok {
		return cst.DefaultConstraints()
	}
	return constraint.Unconstrained
}
