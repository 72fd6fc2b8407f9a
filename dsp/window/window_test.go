package window

import (
	"math"
	"testing"
)

func TestGenerateAllTypes(t *testing.T) {
	types := []Type{
		TypeRectangular,
		TypeHann,
		TypeGauss,
	}

	for _, typ := range types {
		t.Run(typ.String(), func(t *testing.T) {
			w := Generate(typ, 64)
			if len(w) != 64 {
				t.Fatalf("len=%d, want 64", len(w))
			}

			for i, v := range w {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("coefficient[%d] invalid: %v", i, v)
				}
				if v < -1e-12 || v > 1+1e-12 {
					t.Fatalf("coefficient[%d] out of range: %v", i, v)
				}
			}
		})
	}
}

func TestGenerateRectangular(t *testing.T) {
	w := Generate(TypeRectangular, 16)
	for i, v := range w {
		if v != 1 {
			t.Fatalf("coefficient[%d]=%v, want 1", i, v)
		}
	}
}

func TestGoldenVectorHann(t *testing.T) {
	expected := []float64{
		0.0, 0.1882550990706332, 0.6112604669781572, 0.9504844339512095,
		0.9504844339512095, 0.6112604669781573, 0.1882550990706333, 0.0,
	}

	checkGolden(t, Generate(TypeHann, 8), expected, 1e-10)
}

func TestGenerateHannShape(t *testing.T) {
	w := Generate(TypeHann, 9)

	if w[0] != 0 || w[8] != 0 {
		t.Fatalf("symmetric hann should vanish at both ends: %v %v", w[0], w[8])
	}

	if !almostEqual(w[4], 1, 1e-12) {
		t.Fatalf("center coefficient=%v, want 1", w[4])
	}

	for i := 0; i < 4; i++ {
		if !almostEqual(w[i], w[8-i], 1e-12) {
			t.Fatalf("symmetry broken at %d: %v vs %v", i, w[i], w[8-i])
		}
	}
}

func TestGenerateGaussShape(t *testing.T) {
	w := Generate(TypeGauss, 9)

	// Default alpha 1 puts the half-power point exactly at the edges.
	if !almostEqual(w[0], 0.5, 1e-12) || !almostEqual(w[8], 0.5, 1e-12) {
		t.Fatalf("edges=%v %v, want 0.5", w[0], w[8])
	}

	if !almostEqual(w[4], 1, 1e-12) {
		t.Fatalf("center coefficient=%v, want 1", w[4])
	}

	for i := 0; i < 4; i++ {
		if !almostEqual(w[i], w[8-i], 1e-12) {
			t.Fatalf("symmetry broken at %d: %v vs %v", i, w[i], w[8-i])
		}
	}

	narrow := Generate(TypeGauss, 9, WithAlpha(2))
	if !almostEqual(narrow[0], 0.0625, 1e-12) {
		t.Fatalf("alpha=2 edge=%v, want 2^-4", narrow[0])
	}
}

func TestPeriodicDiffersFromSymmetric(t *testing.T) {
	a := Generate(TypeHann, 16)

	b := Generate(TypeHann, 16, WithPeriodic())
	if len(a) != 16 || len(b) != 16 {
		t.Fatalf("unexpected lengths: %d %d", len(a), len(b))
	}

	if almostEqual(a[15], b[15], 1e-12) {
		t.Fatal("expected different end coefficient for periodic form")
	}
}

func TestApplyInPlaceByType(t *testing.T) {
	buf := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	Apply(TypeRectangular, buf)

	for i, v := range buf {
		if v != float64(i+1) {
			t.Fatalf("rectangular should be passthrough at %d: %v", i, v)
		}
	}

	Apply(TypeHann, buf)

	if buf[0] != 0 {
		t.Fatalf("hann first sample should be 0, got %v", buf[0])
	}
}

func TestCoherentGain(t *testing.T) {
	g, err := CoherentGain(Generate(TypeRectangular, 32))
	if err != nil {
		t.Fatal(err)
	}

	if !almostEqual(g, 1, 1e-12) {
		t.Fatalf("rectangular gain=%v, want 1", g)
	}

	// Symmetric Hann of length n sums to (n-1)/2.
	g, err = CoherentGain(Generate(TypeHann, 100))
	if err != nil {
		t.Fatal(err)
	}

	if !almostEqual(g, 0.495, 1e-9) {
		t.Fatalf("hann gain=%v, want 0.495", g)
	}

	g, err = CoherentGain(Generate(TypeHann, 128, WithPeriodic()))
	if err != nil {
		t.Fatal(err)
	}

	if !almostEqual(g, 0.5, 1e-9) {
		t.Fatalf("periodic hann gain=%v, want 0.5", g)
	}
}

func TestApplyCoefficientsHelper(t *testing.T) {
	samples := []float64{1, 2, 3}
	coeffs := []float64{0.5, 0.5, 0.5}

	out, err := ApplyCoefficients(samples, coeffs)
	if err != nil {
		t.Fatal(err)
	}

	if !almostEqual(out[2], 1.5, 1e-12) {
		t.Fatalf("out[2]=%v", out[2])
	}

	if samples[2] != 3 {
		t.Fatalf("input modified: %v", samples[2])
	}
}

func TestValidationAndEdgeCases(t *testing.T) {
	if got := Generate(TypeHann, 0); got != nil {
		t.Fatalf("expected nil for zero length, got %v", got)
	}

	_, err := Hann(0)
	if err == nil {
		t.Fatal("expected size validation error")
	}

	_, err = Gaussian(16, 0)
	if err == nil {
		t.Fatal("expected gauss alpha validation error")
	}

	_, err = Gaussian(0, 1)
	if err == nil {
		t.Fatal("expected gauss size validation error")
	}

	_, err = CoherentGain(nil)
	if err == nil {
		t.Fatal("expected empty coeffs error")
	}

	_, err = ApplyCoefficients([]float64{1, 2}, []float64{1})
	if err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestTypeString(t *testing.T) {
	cases := map[Type]string{
		TypeRectangular: "rectangular",
		TypeHann:        "hann",
		TypeGauss:       "gauss",
		Type(99):        "unknown",
	}

	for typ, want := range cases {
		if got := typ.String(); got != want {
			t.Errorf("String(%d)=%q, want %q", typ, got, want)
		}
	}
}

func checkGolden(t *testing.T, got, want []float64, tol float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("len mismatch got=%d want=%d", len(got), len(want))
	}

	for i := range got {
		if !almostEqual(got[i], want[i], tol) {
			t.Fatalf("index %d: got=%.16f want=%.16f", i, got[i], want[i])
		}
	}
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
