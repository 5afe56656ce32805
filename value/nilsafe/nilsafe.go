// Package nilsafe provides the optional nil-contagion operator variants
// described as secondary in spec §4.4 and Design Notes §9: the source's
// nil-contagion operators coexist with the total operators; this module
// keeps the total operators (value package) as primary and offers this
// package only for callers that opt into nil-propagating semantics.
package nilsafe

import "github.com/cbarrick/gogp/value"

// Add2 adds two values, propagating Nil: if either argument is Nil the
// result is Nil instead of panicking or treating Nil as zero.
func Add2(a, b value.Value) value.Value {
	if a.IsNil() || b.IsNil() {
		return value.Value{K: value.Nil}
	}
	return value.Of(value.AddInt(a.Int, b.Int))
}

// Mul2 multiplies two values under the same nil-contagion rule as Add2.
func Mul2(a, b value.Value) value.Value {
	if a.IsNil() || b.IsNil() {
		return value.Value{K: value.Nil}
	}
	return value.Of(value.MulInt(a.Int, b.Int))
}

// DivFloat2 divides two float values under nil-contagion, falling back to
// the total DivFloat policy (div-by-near-zero returns 1.0) once neither
// operand is Nil.
func DivFloat2(a, b value.Value) value.Value {
	if a.IsNil() || b.IsNil() {
		return value.Value{K: value.Nil}
	}
	return value.OfFloat(value.DivFloat(a.Float, b.Float))
}
