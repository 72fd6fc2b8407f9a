// Package cutoff selects the roughness cutoff wavelength from a measured
// Ra value following the ISO 4288 guideline for non-periodic profiles.
// The evaluation length is five sampling lengths, one sampling length per
// cutoff wavelength.
package cutoff

import "errors"

var (
	ErrRaOutOfRange  = errors.New("cutoff: Ra outside the standard selection range")
	ErrNoConvergence = errors.New("cutoff: selection did not stabilize")
)

// Band is one row of the selection table. Ra values in (RaMin, RaMax]
// map to the band; all lengths are in micrometres.
type Band struct {
	RaMin            float64
	RaMax            float64
	Wavelength       float64 // cutoff wavelength lc
	SamplingLength   float64 // lr, equal to lc
	EvaluationLength float64 // ln = 5 * lr
}

var bands = []Band{
	{0.02, 0.1, 250, 250, 1250},
	{0.1, 2.0, 800, 800, 4000},
	{2.0, 10.0, 2500, 2500, 12500},
	{10.0, 80.0, 8000, 8000, 40000},
}

// Select returns the band whose Ra range contains the measured value.
func Select(ra float64) (Band, error) {
	for _, b := range bands {
		if ra > b.RaMin && ra <= b.RaMax {
			return b, nil
		}
	}
	return Band{}, ErrRaOutOfRange
}

// Bands returns a copy of the selection table in ascending Ra order.
func Bands() []Band {
	out := make([]Band, len(bands))
	copy(out, bands)
	return out
}

// Measure produces the Ra value obtained when filtering with the given
// cutoff wavelength. [Iterate] drives it during cutoff selection.
type Measure func(wavelength float64) (float64, error)

// Iterate runs the ISO 4288 selection loop: measure Ra with a starting
// cutoff, look up the band that Ra calls for, and re-measure with the
// band's cutoff until the selection reproduces itself. A non-positive
// start falls back to the 800 um band. Returns the stable band and the
// Ra measured with its cutoff.
//
// Ra grows with the cutoff wavelength, so the loop normally settles
// within a few steps; if the selection still flips after visiting more
// bands than the table holds, ErrNoConvergence is returned.
func Iterate(start float64, measure Measure) (Band, float64, error) {
	wavelength := start
	if wavelength <= 0 {
		wavelength = bands[1].Wavelength
	}

	for i := 0; i <= len(bands); i++ {
		ra, err := measure(wavelength)
		if err != nil {
			return Band{}, 0, err
		}
		band, err := Select(ra)
		if err != nil {
			return Band{}, 0, err
		}
		if band.Wavelength == wavelength {
			return band, ra, nil
		}
		wavelength = band.Wavelength
	}
	return Band{}, 0, ErrNoConvergence
}
