package calibration

import (
	"errors"
	"math"
	"testing"
)

func TestEstimateConcentrations(t *testing.T) {
	got, err := EstimateConcentrations([]float64{0.1}, 0.2)
	if err != nil {
		t.Fatalf("EstimateConcentrations() error = %v", err)
	}
	if len(got) != 1 || got[0] != 0.5 {
		t.Fatalf("EstimateConcentrations() = %v, want [0.5]", got)
	}
}

func TestEstimateConcentrationsAcceptsZeroAndNegative(t *testing.T) {
	got, err := EstimateConcentrations([]float64{0, -0.05}, 0.25)
	if err != nil {
		t.Fatalf("EstimateConcentrations() error = %v", err)
	}
	if got[0] != 0 || got[1] != -0.2 {
		t.Fatalf("EstimateConcentrations() = %v, want [0 -0.2]", got)
	}
}

func TestEstimateConcentrationsIsLinear(t *testing.T) {
	samples := []float64{0.012, 0.05, 0.0731, 0.2, -0.01}
	for _, beta := range []float64{0.2257, -1.5, 3e-4, 42} {
		for _, k := range []float64{0, 2, -0.5, 1000} {
			scaled := make([]float64, len(samples))
			for i, s := range samples {
				scaled[i] = k * s
			}

			base, err := EstimateConcentrations(samples, beta)
			if err != nil {
				t.Fatalf("EstimateConcentrations() error = %v", err)
			}
			got, err := EstimateConcentrations(scaled, beta)
			if err != nil {
				t.Fatalf("EstimateConcentrations() error = %v", err)
			}

			for i := range samples {
				want := k * base[i]
				if math.Abs(got[i]-want) > 1e-12*math.Max(1, math.Abs(want)) {
					t.Fatalf("beta=%v k=%v: estimate[%d] = %v, want %v", beta, k, i, got[i], want)
				}
			}
		}
	}
}

func TestEstimateConcentrationsErrors(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		beta    float64
		want    error
	}{
		{"zero slope", []float64{0.1}, 0, ErrDivisionByZero},
		{"nan slope", []float64{0.1}, math.NaN(), ErrDivisionByZero},
		{"inf slope", []float64{0.1}, math.Inf(-1), ErrDivisionByZero},
		{"nan sample", []float64{0.1, math.NaN()}, 0.2, ErrInvalidSample},
		{"overflowing sample", []float64{1e308}, 1e-3, ErrInvalidSample},
		{"overflowing negative sample", []float64{0.1, -1e308}, 1e-3, ErrInvalidSample},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EstimateConcentrations(tt.samples, tt.beta)
			if !errors.Is(err, tt.want) {
				t.Fatalf("EstimateConcentrations() error = %v, want %v", err, tt.want)
			}
			if got != nil {
				t.Fatalf("EstimateConcentrations() = %v on error", got)
			}
		})
	}
}

func TestEstimateRoundTrip(t *testing.T) {
	fit, err := FitDataset(standards, absorbanceA)
	if err != nil {
		t.Fatalf("FitDataset() error = %v", err)
	}
	got, err := EstimateConcentrations(absorbanceA, fit.Beta)
	if err != nil {
		t.Fatalf("EstimateConcentrations() error = %v", err)
	}

	// The largest residual of the fit is about 0.0104 absorbance units.
	const tolerance = 0.05
	for i, c := range standards {
		if math.Abs(got[i]-c) > tolerance {
			t.Fatalf("standard %d: estimated %v mg/L, want %v ± %v", i, got[i], c, tolerance)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		concentration float64
		want          Verdict
	}{
		{0, VerdictSafe},
		{-0.1, VerdictSafe},
		{0.2999, VerdictSafe},
		{0.3, VerdictSafe},
		{0.30001, VerdictUnsafe},
		{1.2, VerdictUnsafe},
	}
	for _, tt := range tests {
		if got := Classify(tt.concentration); got != tt.want {
			t.Fatalf("Classify(%v) = %s, want %s", tt.concentration, got, tt.want)
		}
	}
}
