// Package dual implements forward-mode differentiation over complex values.
//
// A Number carries a complex128 value together with a tangent vector holding
// one seat per differentiated parameter. Arithmetic propagates tangents by the
// product, quotient and chain rules, so a kernel written against Number yields
// the signal and its derivatives in a single evaluation:
//
//	t1 := dual.SeedReal(1000, 2, 0) // d/dT1 seat
//	t2 := dual.SeedReal(100, 2, 1)  // d/dT2 seat
//	e1 := t1.Reciprocal().Scale(complex(-tr, 0)).Exp()
//	// e1.V is exp(-TR/T1); e1.D[0] is its T1 derivative
//
// A zero-width Number behaves like plain complex arithmetic.
package dual

import (
	"math/cmplx"
)

// Number is a complex value with forward-mode tangents.
type Number struct {
	V complex128
	D []complex128
}

// Const returns a Number with value v and zero tangents of the given width.
func Const(v complex128, width int) Number {
	return Number{V: v, D: zeros(width)}
}

// ConstReal returns a constant Number from a real value.
func ConstReal(v float64, width int) Number {
	return Const(complex(v, 0), width)
}

// Seed returns a Number with value v and a unit tangent in the given seat.
func Seed(v complex128, width, seat int) Number {
	d := zeros(width)
	if seat >= 0 && seat < width {
		d[seat] = 1
	}

	return Number{V: v, D: d}
}

// SeedReal returns a seeded Number from a real value.
func SeedReal(v float64, width, seat int) Number {
	return Seed(complex(v, 0), width, seat)
}

// Width returns the number of tangent seats.
func (a Number) Width() int {
	return len(a.D)
}

// Add returns a + b.
func (a Number) Add(b Number) Number {
	return Number{V: a.V + b.V, D: combine(a.D, b.D, 1, 1)}
}

// Sub returns a - b.
func (a Number) Sub(b Number) Number {
	return Number{V: a.V - b.V, D: combine(a.D, b.D, 1, -1)}
}

// Mul returns a * b.
func (a Number) Mul(b Number) Number {
	return Number{V: a.V * b.V, D: combine(a.D, b.D, b.V, a.V)}
}

// Div returns a / b.
func (a Number) Div(b Number) Number {
	inv := 1 / b.V

	return Number{V: a.V * inv, D: combine(a.D, b.D, inv, -a.V*inv*inv)}
}

// Neg returns -a.
func (a Number) Neg() Number {
	return Number{V: -a.V, D: scaled(a.D, -1)}
}

// AddConst returns a + c.
func (a Number) AddConst(c complex128) Number {
	return Number{V: a.V + c, D: scaled(a.D, 1)}
}

// Scale returns c * a.
func (a Number) Scale(c complex128) Number {
	return Number{V: c * a.V, D: scaled(a.D, c)}
}

// Reciprocal returns 1 / a.
func (a Number) Reciprocal() Number {
	inv := 1 / a.V

	return Number{V: inv, D: scaled(a.D, -inv*inv)}
}

// Exp returns e^a.
func (a Number) Exp() Number {
	v := cmplx.Exp(a.V)

	return Number{V: v, D: scaled(a.D, v)}
}

// Sin returns sin(a).
func (a Number) Sin() Number {
	return Number{V: cmplx.Sin(a.V), D: scaled(a.D, cmplx.Cos(a.V))}
}

// Cos returns cos(a).
func (a Number) Cos() Number {
	return Number{V: cmplx.Cos(a.V), D: scaled(a.D, -cmplx.Sin(a.V))}
}

// Sqrt returns the principal square root of a.
func (a Number) Sqrt() Number {
	v := cmplx.Sqrt(a.V)

	return Number{V: v, D: scaled(a.D, 1/(2*v))}
}

// NanToNum replaces a non-finite value with a zero constant and scrubs
// non-finite tangents. The scrubbed point is treated as locally constant,
// matching the behavior simulation kernels expect from nan_to_num-style
// cleanups after divides by zero-valued tissue constants.
func (a Number) NanToNum() Number {
	if cmplx.IsNaN(a.V) || cmplx.IsInf(a.V) {
		return Const(0, len(a.D))
	}

	d := make([]complex128, len(a.D))
	for i, t := range a.D {
		if cmplx.IsNaN(t) || cmplx.IsInf(t) {
			continue
		}
		d[i] = t
	}

	return Number{V: a.V, D: d}
}

func zeros(width int) []complex128 {
	if width <= 0 {
		return nil
	}

	return make([]complex128, width)
}

// combine returns ca*a + cb*b over tangent vectors of possibly different
// widths. Missing seats are treated as zero, so zero-width constants mix
// freely with seeded values.
func combine(a, b []complex128, ca, cb complex128) []complex128 {
	width := len(a)
	if len(b) > width {
		width = len(b)
	}

	if width == 0 {
		return nil
	}

	out := make([]complex128, width)
	for i := range a {
		out[i] = ca * a[i]
	}

	for i := range b {
		out[i] += cb * b[i]
	}

	return out
}

func scaled(d []complex128, c complex128) []complex128 {
	if len(d) == 0 {
		return nil
	}

	out := make([]complex128, len(d))
	for i, t := range d {
		out[i] = c * t
	}

	return out
}
