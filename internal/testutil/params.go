package testutil

import "math"

// FlipTrain returns n flip angles in degrees, evenly spaced between startDeg
// and stopDeg inclusive.
func FlipTrain(startDeg, stopDeg float64, n int) []float64 {
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	if n == 1 {
		out[0] = startDeg
		return out
	}
	step := (stopDeg - startDeg) / float64(n-1)
	for i := range out {
		out[i] = startDeg + float64(i)*step
	}
	return out
}

// TissueT1s returns representative tissue T1 values in milliseconds.
func TissueT1s() []float64 {
	return []float64{200, 500, 1000}
}

// ComplexTone returns exp(2*pi*i*freq*k) for k = 0..length-1, a single-line
// spectrum evolution for transform tests. freq is in cycles per sample.
func ComplexTone(freq float64, length int) []complex128 {
	out := make([]complex128, length)
	for k := range out {
		phi := 2 * math.Pi * freq * float64(k)
		out[k] = complex(math.Cos(phi), math.Sin(phi))
	}
	return out
}
