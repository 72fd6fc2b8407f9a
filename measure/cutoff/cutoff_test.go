package cutoff

import (
	"errors"
	"testing"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		name string
		ra   float64
		want float64 // expected cutoff wavelength
	}{
		{"fine band lower interior", 0.05, 250},
		{"fine band upper edge", 0.1, 250},
		{"common band just above edge", 0.11, 800},
		{"common band interior", 1.0, 800},
		{"common band upper edge", 2.0, 800},
		{"coarse band interior", 5.0, 2500},
		{"coarse band upper edge", 10.0, 2500},
		{"coarsest band interior", 40.0, 8000},
		{"coarsest band upper edge", 80.0, 8000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			band, err := Select(tt.ra)
			if err != nil {
				t.Fatalf("Select(%v): %v", tt.ra, err)
			}
			if band.Wavelength != tt.want {
				t.Fatalf("Select(%v).Wavelength = %v, want %v", tt.ra, band.Wavelength, tt.want)
			}
		})
	}
}

func TestSelectOutOfRange(t *testing.T) {
	for _, ra := range []float64{-1, 0, 0.01, 0.02, 80.5, 1000} {
		if _, err := Select(ra); !errors.Is(err, ErrRaOutOfRange) {
			t.Errorf("Select(%v): expected ErrRaOutOfRange, got %v", ra, err)
		}
	}
}

func TestBandLengths(t *testing.T) {
	for _, b := range Bands() {
		if b.SamplingLength != b.Wavelength {
			t.Errorf("band %v: sampling length %v != cutoff %v", b.RaMax, b.SamplingLength, b.Wavelength)
		}
		if b.EvaluationLength != 5*b.SamplingLength {
			t.Errorf("band %v: evaluation length %v != 5 * %v", b.RaMax, b.EvaluationLength, b.SamplingLength)
		}
	}
}

func TestBandsReturnsCopy(t *testing.T) {
	got := Bands()
	got[0].Wavelength = -1
	band, err := Select(0.05)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if band.Wavelength != 250 {
		t.Fatal("mutating the Bands result leaked into the table")
	}
}

func TestIterateImmediatelyStable(t *testing.T) {
	calls := 0
	band, ra, err := Iterate(800, func(wavelength float64) (float64, error) {
		calls++
		return 1.0, nil // Ra 1.0 selects the 800 um band
	})
	if err != nil {
		t.Fatalf("Iterate: %v", err)
	}
	if band.Wavelength != 800 || ra != 1.0 || calls != 1 {
		t.Fatalf("band %v, ra %v, calls %d; want 800, 1.0, 1", band.Wavelength, ra, calls)
	}
}

func TestIterateStepsUp(t *testing.T) {
	// Measuring with a longer cutoff exposes more roughness. Starting at
	// 250 um the loop should climb to the stable 2500 um band.
	raByWavelength := map[float64]float64{
		250:  2.5, // selects 2500
		2500: 4.0, // selects 2500: stable
	}
	var visited []float64
	band, ra, err := Iterate(250, func(wavelength float64) (float64, error) {
		visited = append(visited, wavelength)
		return raByWavelength[wavelength], nil
	})
	if err != nil {
		t.Fatalf("Iterate: %v", err)
	}
	if band.Wavelength != 2500 {
		t.Fatalf("Wavelength = %v, want 2500", band.Wavelength)
	}
	if ra != 4.0 {
		t.Fatalf("ra = %v, want 4.0", ra)
	}
	if len(visited) != 2 || visited[0] != 250 || visited[1] != 2500 {
		t.Fatalf("visited %v, want [250 2500]", visited)
	}
}

func TestIterateDefaultStart(t *testing.T) {
	var first float64
	_, _, err := Iterate(0, func(wavelength float64) (float64, error) {
		if first == 0 {
			first = wavelength
		}
		return 1.0, nil
	})
	if err != nil {
		t.Fatalf("Iterate: %v", err)
	}
	if first != 800 {
		t.Fatalf("starting wavelength %v, want 800", first)
	}
}

func TestIterateOscillationGuard(t *testing.T) {
	// Adversarial measurement that never settles: 800 um calls for the
	// 2500 um band and vice versa.
	_, _, err := Iterate(800, func(wavelength float64) (float64, error) {
		if wavelength == 800 {
			return 5.0, nil // selects 2500
		}
		return 1.0, nil // selects 800
	})
	if !errors.Is(err, ErrNoConvergence) {
		t.Fatalf("expected ErrNoConvergence, got %v", err)
	}
}

func TestIteratePropagatesErrors(t *testing.T) {
	boom := errors.New("probe fault")
	_, _, err := Iterate(800, func(wavelength float64) (float64, error) {
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected measurement error, got %v", err)
	}

	_, _, err = Iterate(800, func(wavelength float64) (float64, error) {
		return 500, nil // outside every band
	})
	if !errors.Is(err, ErrRaOutOfRange) {
		t.Fatalf("expected ErrRaOutOfRange, got %v", err)
	}
}
