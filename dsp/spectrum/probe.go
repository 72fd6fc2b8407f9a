//nolint:funcorder
package spectrum

import (
	"fmt"
	"math"
)

// Probe evaluates a single spatial wavelength of a surface trace using the
// Goertzel recurrence, without computing an entire FFT.
//
// This is useful when the wavelength of interest is known up front, such as a
// machine-tool feed mark or a chatter period, or when refining the amplitude
// at a wavelength estimated from a coarse spectrum.
//
// Behavior and Semantics:
//
// The probe is stateful and accumulates information from each processed
// sample. Power() and Magnitude() evaluate the wavelength component based on
// all samples processed since the last Reset().
//
// The main lobe width of the probe response is 4*pi/N for a block of N
// samples. Two wavelengths can be distinguished when their normalized
// frequencies differ by more than 2*pi/N. Spectral leakage occurs if the
// block does not span an integer number of periods of the target wavelength;
// for exact-period blocks the response matches the corresponding DFT bin.
type Probe struct {
	wavelength     float64
	sampleDistance float64
	coeff          float64
	s0, s1         float64
}

// NewProbe creates a probe for the target wavelength over samples spaced
// sampleDistance apart. Both share one length unit.
//
// wavelength must be at least twice the sample distance.
func NewProbe(wavelength, sampleDistance float64) (*Probe, error) {
	if sampleDistance <= 0 || math.IsNaN(sampleDistance) || math.IsInf(sampleDistance, 0) {
		return nil, fmt.Errorf("probe: sample distance must be > 0: %v", sampleDistance)
	}

	if wavelength < 2*sampleDistance || math.IsNaN(wavelength) || math.IsInf(wavelength, 0) {
		return nil, fmt.Errorf("probe: wavelength must be at least twice the sample distance: %v", wavelength)
	}

	p := &Probe{
		wavelength:     wavelength,
		sampleDistance: sampleDistance,
	}
	p.updateCoeff()

	return p, nil
}

func (p *Probe) updateCoeff() {
	p.coeff = 2 * math.Cos(2*math.Pi*p.sampleDistance/p.wavelength)
}

// Reset clears the internal state.
func (p *Probe) Reset() {
	p.s0 = 0
	p.s1 = 0
}

// ProcessSample updates the internal state with a single height sample.
func (p *Probe) ProcessSample(input float64) {
	s := input + p.coeff*p.s0 - p.s1
	p.s1 = p.s0
	p.s0 = s
}

// ProcessBlock updates the internal state with a block of height samples.
func (p *Probe) ProcessBlock(input []float64) {
	s0, s1 := p.s0, p.s1

	coeff := p.coeff
	for _, x := range input {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}

	p.s0, p.s1 = s0, s1
}

// Power returns the squared magnitude of the wavelength component.
//
// This is typically called after processing a block of samples.
// The result is equivalent to |X[k]|^2 from a DFT of the same block length.
func (p *Probe) Power() float64 {
	return p.s0*p.s0 + p.s1*p.s1 - p.coeff*p.s0*p.s1
}

// Magnitude returns the magnitude of the wavelength component.
func (p *Probe) Magnitude() float64 {
	v := p.Power()
	if v <= 0 {
		return 0
	}

	return math.Sqrt(v)
}

// SetWavelength updates the target wavelength.
func (p *Probe) SetWavelength(wavelength float64) error {
	if wavelength < 2*p.sampleDistance || math.IsNaN(wavelength) || math.IsInf(wavelength, 0) {
		return fmt.Errorf("probe: wavelength must be at least twice the sample distance: %v", wavelength)
	}

	p.wavelength = wavelength
	p.updateCoeff()

	return nil
}

// SetSampleDistance updates the sample distance.
func (p *Probe) SetSampleDistance(sampleDistance float64) error {
	if sampleDistance <= 0 || math.IsNaN(sampleDistance) || math.IsInf(sampleDistance, 0) {
		return fmt.Errorf("probe: sample distance must be > 0: %v", sampleDistance)
	}

	if p.wavelength < 2*sampleDistance {
		return fmt.Errorf("probe: wavelength must be at least twice the sample distance: %v", p.wavelength)
	}

	p.sampleDistance = sampleDistance
	p.updateCoeff()

	return nil
}

// Wavelength returns the current target wavelength.
func (p *Probe) Wavelength() float64 { return p.wavelength }

// SampleDistance returns the current sample distance.
func (p *Probe) SampleDistance() float64 { return p.sampleDistance }

// AmplitudeAt estimates the amplitude of a sinusoidal component at the given
// wavelength in one shot.
//
// The trace should have its mean removed first; a residual mean leaks into
// nearby wavelengths. The estimate 2*|X|/N is exact when the trace spans an
// integer number of periods and the wavelength lies strictly between twice
// the sample distance and the trace length.
func AmplitudeAt(trace []float64, wavelength, sampleDistance float64) (float64, error) {
	if len(trace) == 0 {
		return 0, fmt.Errorf("probe: trace must not be empty")
	}

	p, err := NewProbe(wavelength, sampleDistance)
	if err != nil {
		return 0, err
	}

	p.ProcessBlock(trace)

	return 2 * p.Magnitude() / float64(len(trace)), nil
}
