package model

import "github.com/INFN-MRI/mrsim/sim/core"

// Value is a user-supplied parameter value: a scalar or a vector of float64.
//
// Broadcastable properties accept scalars (shared by all samples) or vectors
// (one entry per sample). Sequence parameters accept scalars or vectors of
// arbitrary length (e.g. a flip-angle train).
type Value struct {
	data   []float64
	scalar bool
}

// Scalar returns a scalar Value.
func Scalar(v float64) Value {
	return Value{data: []float64{v}, scalar: true}
}

// Vector returns a vector Value holding a copy of vs.
func Vector(vs []float64) Value {
	data := make([]float64, len(vs))
	copy(data, vs)

	return Value{data: data}
}

// Sweep returns a vector Value with n evenly spaced entries from start to
// stop inclusive.
func Sweep(start, stop float64, n int) Value {
	return Value{data: core.Linspace(start, stop, n)}
}

// IsScalar reports whether the value is a scalar.
func (v Value) IsScalar() bool {
	return v.scalar
}

// Len returns the number of entries (1 for scalars).
func (v Value) Len() int {
	return len(v.data)
}

// At returns the i-th entry. Scalars broadcast: any index returns the value.
func (v Value) At(i int) float64 {
	if v.scalar {
		return v.data[0]
	}

	return v.data[i]
}

// Values returns the underlying entries. The slice must not be modified.
func (v Value) Values() []float64 {
	return v.data
}

// Args maps parameter names to values for a single evaluation.
type Args map[string]Value
