// Package messages is a demonstration schema exercising the aper
// composition protocol end to end: a SEQUENCE with an optional field,
// a SEQUENCE OF octets, and an extensible CHOICE whose extension
// alternative is carried as an open type. It has no teacher precedent
// (the teacher has no aggregate-type layer at all) and is grounded
// instead on original_source/src/sequence_of.rs and the CHOICE/open-
// type shape original_source's README describes but never implements
// as runnable Rust — the shape is inferred from ITU-T X.691 §23 and
// re-expressed in the composition protocol built for this package.
package messages

import (
	"github.com/quietbit/aper/aper"
	"github.com/quietbit/aper/internal/constraint"
)

// Octet is a plain octet (0..255), the SEQUENCE OF element type used by
// Report.Items. A bare byte cannot implement Encodable/Decodable
// itself since Go forbids methods on unnamed/builtin types. It carries
// its [0,255] range as a DefaultConstraints so a container can leave
// the override empty and still get the right width.
type Octet uint8

func (o Octet) EncodeAPER(e *aper.Encoder, c constraint.Pair) error {
	v := aper.Effective(o, c).Value
	if v == nil {
		v = o.DefaultConstraints().Value
	}
	return e.EncodeInteger(int64(o), v.Lower, v.Upper, false)
}

func (o *Octet) DecodeAPER(d *aper.Decoder, c constraint.Pair) error {
	v := aper.Effective(*o, c).Value
	if v == nil {
		v = o.DefaultConstraints().Value
	}
	n, err := d.DecodeInteger(v.Lower, v.Upper, false)
	if err != nil {
		return err
	}
	*o = Octet(n)
	return nil
}

func (o Octet) DefaultConstraints() constraint.Pair {
	lb, ub := int64(0), int64(255)
	return constraint.WithValue(constraint.Constraint{Lower: &lb, Upper: &ub})
}

// Ping is a fixed, non-extensible SEQUENCE with a single constrained
// integer field.
type Ping struct {
	Sequence int64 // 0..255
}

func (p Ping) EncodeAPER(e *aper.Encoder, c constraint.Pair) error {
	v := aper.Effective(p, c).Value
	if v == nil {
		v = p.DefaultConstraints().Value
	}
	return e.EncodeInteger(p.Sequence, v.Lower, v.Upper, false)
}

func (p *Ping) DecodeAPER(d *aper.Decoder, c constraint.Pair) error {
	v := aper.Effective(*p, c).Value
	if v == nil {
		v = p.DefaultConstraints().Value
	}
	n, err := d.DecodeInteger(v.Lower, v.Upper, false)
	if err != nil {
		return err
	}
	p.Sequence = n
	return nil
}

func (p Ping) DefaultConstraints() constraint.Pair {
	lb, ub := int64(0), int64(255)
	return constraint.WithValue(constraint.Constraint{Lower: &lb, Upper: &ub})
}

// Report is a SEQUENCE with a SEQUENCE OF field and one OPTIONAL field,
// exercising SequenceOf, Optional and the sequence preamble together.
type Report struct {
	Items aper.SequenceOf[Octet, *Octet]
	Note  aper.Optional[aper.OctetString]
}

func (r Report) EncodeAPER(e *aper.Encoder, c constraint.Pair) error {
	if err := e.EncodeSequencePreamble([]bool{r.Note.Present}, false, false); err != nil {
		return err
	}
	if err := r.Items.EncodeAPER(e, constraint.Unconstrained); err != nil {
		return err
	}
	return r.Note.EncodeIfPresent(e, func(v aper.OctetString, e *aper.Encoder) error {
		return v.EncodeAPER(e, constraint.Unconstrained)
	})
}

func (r *Report) DecodeAPER(d *aper.Decoder, c constraint.Pair) error {
	present, _, err := d.DecodeSequencePreamble(1, false)
	if err != nil {
		return err
	}
	if err := r.Items.DecodeAPER(d, constraint.Unconstrained); err != nil {
		return err
	}
	return r.Note.DecodeIfPresent(d, present[0], func(v *aper.OctetString, d *aper.Decoder) error {
		return v.DecodeAPER(d, constraint.Unconstrained)
	})
}

// Alert is the extension alternative added to Notification after its
// initial two-alternative root, carried as an open type.
type Alert struct {
	Code int64 // unconstrained
}

func (a Alert) EncodeAPER(e *aper.Encoder, c constraint.Pair) error {
	return e.EncodeInteger(a.Code, nil, nil, false)
}

func (a *Alert) DecodeAPER(d *aper.Decoder, c constraint.Pair) error {
	v, err := d.DecodeInteger(nil, nil, false)
	if err != nil {
		return err
	}
	a.Code = v
	return nil
}

// Kind selects Notification's root CHOICE alternative.
type Kind int

const (
	KindPing Kind = iota
	KindReport
)

const notificationRootCount = 2

// Notification is an extensible CHOICE over {Ping, Report} with Alert
// as its sole extension alternative so far. Alert being non-nil
// selects the extension regardless of Kind.
type Notification struct {
	Kind   Kind
	Ping   Ping
	Report Report
	Alert  *Alert
}

func (n Notification) EncodeAPER(e *aper.Encoder, c constraint.Pair) error {
	if n.Alert != nil {
		if err := e.EncodeChoiceExtension(0); err != nil {
			return err
		}
		return encodeOpenType(e, *n.Alert)
	}

	if err := e.EncodeChoiceHeader(uint64(n.Kind), notificationRootCount, true); err != nil {
		return err
	}
	switch n.Kind {
	case KindPing:
		return n.Ping.EncodeAPER(e, constraint.Unconstrained)
	case KindReport:
		return n.Report.EncodeAPER(e, constraint.Unconstrained)
	default:
		return &aper.ChoiceError{Index: uint64(n.Kind), Count: notificationRootCount}
	}
}

func (n *Notification) DecodeAPER(d *aper.Decoder, c constraint.Pair) error {
	idx, extended, err := d.DecodeChoiceHeader(notificationRootCount, true)
	if err != nil {
		return err
	}

	if extended {
		if idx != 0 {
			return &aper.ChoiceError{Index: idx, Count: 1}
		}
		body, err := decodeOpenType(d)
		if err != nil {
			return err
		}
		var a Alert
		if err := a.DecodeAPER(aper.NewDecoder(body), constraint.Unconstrained); err != nil {
			return err
		}
		n.Alert = &a
		return nil
	}

	n.Alert = nil
	switch idx {
	case 0:
		n.Kind = KindPing
		return n.Ping.DecodeAPER(d, constraint.Unconstrained)
	case 1:
		n.Kind = KindReport
		return n.Report.DecodeAPER(d, constraint.Unconstrained)
	default:
		return &aper.ChoiceError{Index: idx, Count: notificationRootCount}
	}
}

// encodeOpenType writes v's own encoding as a length-prefixed octet
// string, the wire shape ITU-T X.691 §23 assigns to CHOICE extension
// alternatives and unknown-extension SEQUENCE fields.
func encodeOpenType(e *aper.Encoder, v aper.Encodable) error {
	inner := aper.NewEncoder()
	if err := v.EncodeAPER(inner, constraint.Unconstrained); err != nil {
		return err
	}
	enc := inner.IntoEncoding()
	data := enc.Bytes()
	if _, _, err := e.EncodeLength(uint64(len(data)), nil); err != nil {
		return err
	}
	return e.AppendRawBytes(data)
}

// decodeOpenType reads back the length-prefixed octets an open-type
// alternative was encoded as, without decoding its contents.
func decodeOpenType(d *aper.Decoder) ([]byte, error) {
	n, _, err := d.DecodeLength(nil)
	if err != nil {
		return nil, err
	}
	return d.ReadRawBytes(int(n))
}
