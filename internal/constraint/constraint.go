// Package constraint models the value-range and size-range descriptors
// that parametrize APER encoding width.
//
// Grounded on original_source/src/constraints.rs's Constraint/
// Constraints/UNCONSTRAINED shape, generalized from Rust's Option<i64>
// bounds to pointer bounds so a zero Pair can serve as the Go analogue
// of a `const` sentinel (Go cannot declare a struct-valued const).
package constraint

// Constraint represents a closed interval [Lower, Upper] where either
// end may be absent (nil).
type Constraint struct {
	Lower *int64
	Upper *int64
}

// NewConstraint builds a Constraint from optional bounds.
func NewConstraint(lower, upper *int64) Constraint {
	return Constraint{Lower: lower, Upper: upper}
}

// Fixed returns a Constraint with both bounds set to v.
func Fixed(v int64) Constraint {
	return Constraint{Lower: &v, Upper: ptr(v)}
}

// Bounded returns a fully constrained Constraint [lo, hi].
func Bounded(lo, hi int64) Constraint {
	return Constraint{Lower: &lo, Upper: &hi}
}

// AtLeast returns a semi-constrained Constraint with only a lower bound.
func AtLeast(lo int64) Constraint {
	return Constraint{Lower: &lo}
}

func ptr(v int64) *int64 { return &v }

// FullyConstrained reports whether both bounds are present.
func (c Constraint) FullyConstrained() bool {
	return c.Lower != nil && c.Upper != nil
}

// SemiConstrained reports whether only the lower bound is present.
func (c Constraint) SemiConstrained() bool {
	return c.Lower != nil && c.Upper == nil
}

// IsUnconstrained reports whether neither bound is present.
func (c Constraint) IsUnconstrained() bool {
	return c.Lower == nil && c.Upper == nil
}

// Range returns upper - lower + 1 and true when fully constrained;
// otherwise (0, false).
func (c Constraint) Range() (uint64, bool) {
	if !c.FullyConstrained() {
		return 0, false
	}
	return uint64(*c.Upper - *c.Lower + 1), true
}

// Contains reports whether v lies within the constraint. An absent
// bound imposes no limit on that side.
func (c Constraint) Contains(v int64) bool {
	if c.Lower != nil && v < *c.Lower {
		return false
	}
	if c.Upper != nil && v > *c.Upper {
		return false
	}
	return true
}

// Pair bundles the value constraint and size constraint that together
// parametrize the encoding of a schema field. Either may be absent.
type Pair struct {
	Value *Constraint
	Size  *Constraint
}

// Unconstrained is the sentinel Pair with neither Value nor Size set.
// A Go value type stands in for original_source's `const UNCONSTRAINED`
// since Pair holds pointers and cannot itself be a Go const.
var Unconstrained = Pair{}

// WithValue returns a Pair carrying only a value constraint.
func WithValue(c Constraint) Pair {
	return Pair{Value: &c}
}

// WithSize returns a Pair carrying only a size constraint.
func WithSize(c Constraint) Pair {
	return Pair{Size: &c}
}
