package spectrum

import (
	"errors"
	"math"
	"testing"

	"github.com/INFN-MRI/mrsim/internal/testutil"
)

func TestComputeEmptySignal(t *testing.T) {
	_, err := Compute(nil)
	if !errors.Is(err, ErrEmptySignal) {
		t.Fatalf("err = %v, want ErrEmptySignal", err)
	}
}

func TestComputePadsToPowerOfTwo(t *testing.T) {
	resp, err := Compute(make([]complex128, 100))
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if resp.Len() != 128 {
		t.Fatalf("transform size = %d, want 128", resp.Len())
	}
}

func TestComputeMinSize(t *testing.T) {
	resp, err := Compute(make([]complex128, 16), WithMinSize(256))
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if resp.Len() != 256 {
		t.Fatalf("transform size = %d, want 256", resp.Len())
	}
}

func TestFrequencyAxisCentered(t *testing.T) {
	resp, err := Compute(make([]complex128, 8))
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if resp.Freqs[0] != -0.5 {
		t.Fatalf("Freqs[0] = %v, want -0.5", resp.Freqs[0])
	}

	if resp.Freqs[4] != 0 {
		t.Fatalf("Freqs[4] = %v, want 0 (DC centered)", resp.Freqs[4])
	}
}

func TestTonePeak(t *testing.T) {
	// exact bin frequency: all energy lands in one bin
	tone := testutil.ComplexTone(8.0/64.0, 64)

	resp, err := Compute(tone)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	mag := Magnitude(resp.Bins)
	peak := PeakBin(mag)

	if got := resp.Freqs[peak]; math.Abs(got-0.125) > 1e-12 {
		t.Fatalf("peak frequency = %v, want 0.125", got)
	}

	if w := Width(mag, 0.5); w != 1 {
		t.Fatalf("width = %d, want 1 for an on-bin tone", w)
	}
}

func TestNegativeFrequencyTone(t *testing.T) {
	tone := testutil.ComplexTone(-4.0/64.0, 64)

	resp, err := Compute(tone)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	peak := PeakBin(Magnitude(resp.Bins))
	if got := resp.Freqs[peak]; math.Abs(got+0.0625) > 1e-12 {
		t.Fatalf("peak frequency = %v, want -0.0625", got)
	}
}

func TestMagnitudeMatchesPower(t *testing.T) {
	tone := testutil.ComplexTone(3.0/32.0, 32)

	resp, err := Compute(tone)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	mag := Magnitude(resp.Bins)
	pow := Power(resp.Bins)

	for i := range mag {
		if diff := math.Abs(pow[i] - mag[i]*mag[i]); diff > 1e-9 {
			t.Fatalf("bin %d: power %v, |mag|^2 %v", i, pow[i], mag[i]*mag[i])
		}
	}
}

func TestPeakBinEmpty(t *testing.T) {
	if got := PeakBin(nil); got != -1 {
		t.Fatalf("PeakBin(nil) = %d, want -1", got)
	}
}

func TestWidthClampsRel(t *testing.T) {
	mag := []float64{0, 1, 2, 1, 0}

	if got, want := Width(mag, -3), Width(mag, 0.5); got != want {
		t.Fatalf("clamped width = %d, want %d", got, want)
	}
}

func TestNextPow2(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {64, 64}, {65, 128}, {1000, 1024},
	}

	for _, tc := range cases {
		if got := nextPow2(tc.in); got != tc.want {
			t.Fatalf("nextPow2(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
