package model

import (
	"fmt"

	"github.com/INFN-MRI/mrsim/sim/dual"
)

// Kernel is the per-sample signal engine of a concrete model.
//
// It receives the broadcastable properties of one sample as dual numbers and
// the shared sequence parameters as plain constants, and returns the signal
// for each contrast. Kernels must be pure: no retained state, no mutation of
// inputs.
type Kernel func(p Props, s Seq) ([]dual.Number, error)

// JacobianKernel is an optional hand-derived Jacobian engine. When installed
// it replaces the forward-mode path. It must return one row per diff target,
// in diff order, each row holding the derivative per contrast.
type JacobianKernel func(p Props, s Seq) ([][]complex128, error)

// Props is the per-sample view of the broadcastable properties.
type Props struct {
	vals  []dual.Number
	index map[string]int
	width int
}

// Len returns the number of declared properties.
func (p Props) Len() int {
	return len(p.vals)
}

// Width returns the tangent width (number of diff targets; 0 on the
// forward path).
func (p Props) Width() int {
	return p.width
}

// At returns the property at position i in declaration order.
func (p Props) At(i int) dual.Number {
	return p.vals[i]
}

// Get returns the property with the given name. Looking up a name that was
// never declared is a programming error in the kernel and panics.
func (p Props) Get(name string) dual.Number {
	i, ok := p.index[name]
	if !ok {
		panic(fmt.Sprintf("model: kernel requested undeclared property %q", name))
	}

	return p.vals[i]
}

// Const wraps a plain real value as a zero-tangent dual of matching width,
// for mixing sequence constants into property arithmetic.
func (p Props) Const(v float64) dual.Number {
	return dual.ConstReal(v, p.width)
}

// Seq is the shared view of the non-broadcastable sequence parameters.
type Seq struct {
	vals  []Value
	index map[string]int
}

// Get returns the sequence parameter with the given name. Looking up a name
// that was never declared panics, as in [Props.Get].
func (s Seq) Get(name string) Value {
	i, ok := s.index[name]
	if !ok {
		panic(fmt.Sprintf("model: kernel requested undeclared sequence parameter %q", name))
	}

	return s.vals[i]
}
