package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t unless got and want have equal length
// and every height pair agrees within eps (absolute).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("trace length: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if d := math.Abs(got[i] - want[i]); d > eps {
			t.Fatalf("sample %d: got %v, want %v (off by %v, eps %v)", i, got[i], want[i], d, eps)
		}
	}
}

// RequireFinite fails t if the trace contains a NaN or infinite height.
func RequireFinite(t *testing.T, trace []float64) {
	t.Helper()
	for i, v := range trace {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("sample %d is %v, trace must stay finite", i, v)
		}
	}
}

// MaxAbsDiff returns the largest pointwise height difference between two
// traces, or an error when their lengths differ.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("trace length mismatch: %d vs %d", len(a), len(b))
	}
	var worst float64
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > worst {
			worst = d
		}
	}
	return worst, nil
}

// RMS returns the root mean square of a trace, or 0 for an empty slice.
// Useful for quantifying how much of a wave component survives filtering.
func RMS(trace []float64) float64 {
	if len(trace) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range trace {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(trace)))
}
