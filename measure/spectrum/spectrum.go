// Package spectrum provides frequency-domain analysis of simulated signal
// evolutions.
//
// Steady-state sequences respond to off-resonance with characteristic
// profiles (e.g. bSSFP banding), and multi-echo evolutions encode spectral
// content along the contrast dimension. This package turns a complex signal
// evolution into a centered discrete spectrum and derives simple profile
// metrics from it:
//
//	resp, err := spectrum.Compute(sig)
//	mag := spectrum.Magnitude(resp.Bins)
//	peak := spectrum.PeakBin(mag)
package spectrum

import (
	"errors"
	"fmt"
	"math/bits"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/INFN-MRI/mrsim/sim/core"
)

// Errors returned by spectrum functions.
var (
	ErrEmptySignal = errors.New("spectrum: signal is empty")
	ErrInvalidSize = errors.New("spectrum: invalid transform size")
)

// Response holds a centered discrete spectrum of a signal evolution.
type Response struct {
	// Bins is the spectrum with DC in the middle (even sizes: index Len/2).
	Bins []complex128
	// Freqs is the normalized frequency axis in cycles per contrast sample,
	// aligned with Bins.
	Freqs []float64
}

// Len returns the transform size.
func (r *Response) Len() int {
	return len(r.Bins)
}

// Config defines spectrum computation settings.
type Config struct {
	// MinSize is the minimum transform size; the signal is zero-padded to
	// the next power of two >= max(len(signal), MinSize).
	MinSize int
}

// Option mutates a Config.
type Option func(*Config)

// WithMinSize sets the minimum transform size.
func WithMinSize(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.MinSize = n
		}
	}
}

// Compute zero-pads the signal evolution to a power-of-two size, applies a
// forward FFT and returns the centered spectrum with its frequency axis.
func Compute(sig []complex128, opts ...Option) (*Response, error) {
	if len(sig) == 0 {
		return nil, ErrEmptySignal
	}

	var cfg Config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	size := len(sig)
	if cfg.MinSize > size {
		size = cfg.MinSize
	}

	fftSize := nextPow2(size)
	if fftSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: creating FFT plan: %w", err)
	}

	pad := padPool.Get().(*padBuf)
	pad.data = core.EnsureLen(pad.data, fftSize)
	core.Zero(pad.data)
	core.CopyInto(pad.data, sig)

	out := make([]complex128, fftSize)
	err = plan.Forward(out, pad.data)
	padPool.Put(pad)

	if err != nil {
		return nil, fmt.Errorf("spectrum: forward FFT: %w", err)
	}

	bins := make([]complex128, fftSize)
	freqs := make([]float64, fftSize)
	half := fftSize / 2

	for i := range bins {
		// fftshift: negative frequencies first, DC at index half.
		bins[i] = out[(i+half)%fftSize]
		freqs[i] = float64(i-half) / float64(fftSize)
	}

	return &Response{Bins: bins, Freqs: freqs}, nil
}

// padBuf holds pooled scratch memory for zero-padded transform input.
type padBuf struct {
	data []complex128
}

var padPool = sync.Pool{
	New: func() any { return &padBuf{} },
}

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)

	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}

	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Magnitude returns |X[k]| for each spectrum bin. Scratch buffers are pooled
// internally, so in steady state this allocates only the output slice.
func Magnitude(bins []complex128) []float64 {
	n := len(bins)
	out := make([]float64, n)

	if n == 0 {
		return out
	}

	re, im, buf := getScratch(n)
	for i, b := range bins {
		re[i] = real(b)
		im[i] = imag(b)
	}

	vecmath.Magnitude(out, re, im)
	putScratch(buf)

	return out
}

// Power returns |X[k]|^2 for each spectrum bin.
func Power(bins []complex128) []float64 {
	n := len(bins)
	out := make([]float64, n)

	if n == 0 {
		return out
	}

	re, im, buf := getScratch(n)
	for i, b := range bins {
		re[i] = real(b)
		im[i] = imag(b)
	}

	vecmath.Power(out, re, im)
	putScratch(buf)

	return out
}

// PeakBin returns the index of the largest magnitude bin, or -1 for an
// empty slice.
func PeakBin(mag []float64) int {
	peak := -1
	best := 0.0

	for i, v := range mag {
		if peak < 0 || v > best {
			peak, best = i, v
		}
	}

	return peak
}

// Width returns the number of contiguous bins around the peak whose
// magnitude stays at or above rel times the peak magnitude. rel outside
// (0, 1] is clamped to 0.5 (the -6 dB width).
func Width(mag []float64, rel float64) int {
	if len(mag) == 0 {
		return 0
	}

	if rel <= 0 || rel > 1 {
		rel = 0.5
	}

	peak := PeakBin(mag)
	threshold := rel * mag[peak]

	lo := peak
	for lo > 0 && mag[lo-1] >= threshold {
		lo--
	}

	hi := peak
	for hi < len(mag)-1 && mag[hi+1] >= threshold {
		hi++
	}

	return hi - lo + 1
}

// nextPow2 returns the smallest power of two >= n.
func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}

	return 1 << bits.Len(uint(n-1))
}
