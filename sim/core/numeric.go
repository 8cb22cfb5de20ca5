package core

import (
	"math"
	"math/cmplx"
)

const defaultEpsilon = 1e-12

// NanToNum replaces NaN and Inf with 0.
//
// Relaxation and phase factors divide by tissue constants that may be zero
// for background voxels; kernels scrub the result instead of guarding every
// division.
func NanToNum(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}

	return x
}

// NanToNumComplex replaces a complex value with 0 if either part is NaN or Inf.
func NanToNumComplex(x complex128) complex128 {
	if cmplx.IsNaN(x) || cmplx.IsInf(x) {
		return 0
	}

	return x
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// Linspace returns n evenly spaced values from start to stop inclusive.
// n <= 0 returns nil; n == 1 returns [start].
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}

	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}

	return out
}
