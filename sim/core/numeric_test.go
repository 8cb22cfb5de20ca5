package core

import (
	"math"
	"testing"
)

func TestNanToNum(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{1.5, 1.5},
		{0, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{math.Inf(-1), 0},
	}

	for _, tc := range cases {
		if got := NanToNum(tc.in); got != tc.want {
			t.Fatalf("NanToNum(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNanToNumComplex(t *testing.T) {
	if got := NanToNumComplex(complex(math.NaN(), 1)); got != 0 {
		t.Fatalf("got %v, want 0", got)
	}

	if got := NanToNumComplex(complex(1, math.Inf(1))); got != 0 {
		t.Fatalf("got %v, want 0", got)
	}

	if got := NanToNumComplex(3 + 4i); got != 3+4i {
		t.Fatalf("got %v, want 3+4i", got)
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-15, 1e-12) {
		t.Fatal("values within eps reported unequal")
	}

	if NearlyEqual(1.0, 1.1, 1e-12) {
		t.Fatal("distant values reported equal")
	}
}

func TestLinspace(t *testing.T) {
	got := Linspace(0, 1, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}

	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLinspaceDegenerate(t *testing.T) {
	if out := Linspace(0, 1, 0); out != nil {
		t.Fatalf("n=0: got %v, want nil", out)
	}

	out := Linspace(3, 9, 1)
	if len(out) != 1 || out[0] != 3 {
		t.Fatalf("n=1: got %v, want [3]", out)
	}
}
