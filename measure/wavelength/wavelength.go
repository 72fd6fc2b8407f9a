// Package wavelength estimates the dominant spatial wavelength of a surface
// trace from its magnitude spectrum.
//
// The trace is mean-removed, windowed, zero-padded to a power of two and
// transformed. The coarse spectrum peak is refined by parabolic interpolation
// over its neighboring bins, and the amplitude at the refined wavelength is
// re-measured on the raw trace with a single-wavelength probe, which avoids
// window scalloping.
package wavelength

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/alexander-milne/fft-waviness-filter/dsp/profile"
	"github.com/alexander-milne/fft-waviness-filter/dsp/spectrum"
	"github.com/alexander-milne/fft-waviness-filter/dsp/window"
)

const (
	defaultSampleDistance = 0.8
	minTraceLen           = 8
)

// Config holds dominant-wavelength estimation parameters.
type Config struct {
	// SampleDistance is the spacing between trace samples. Zero selects 0.8.
	SampleDistance float64

	// FFTSize is the transform size. It is rounded up to a power of two and
	// never below the trace length. Zero selects the next power of two.
	FFTSize int

	// MinWavelength bounds the search from below. Zero selects twice the
	// sample distance, the shortest resolvable wavelength.
	MinWavelength float64

	// MaxWavelength bounds the search from above. Zero selects the trace span.
	MaxWavelength float64

	// WindowType selects the analysis window. The zero value selects Hann.
	WindowType window.Type
}

// Result holds a dominant-wavelength estimate.
type Result struct {
	// Wavelength is the refined dominant wavelength, in the unit of
	// SampleDistance.
	Wavelength float64

	// Amplitude is the sinusoidal amplitude estimate at that wavelength.
	Amplitude float64

	// Bin is the integer spectrum bin of the coarse peak.
	Bin int

	// FFTSize is the transform size actually used.
	FFTSize int

	// Magnitudes is the one-sided magnitude spectrum, bins 0..FFTSize/2.
	Magnitudes []float64

	// Wavelengths maps each spectrum bin to its wavelength. Bin 0 is +Inf.
	Wavelengths []float64
}

// Estimator performs dominant-wavelength analysis on surface traces.
type Estimator struct {
	cfg Config
}

// NewEstimator creates an estimator with the given configuration.
func NewEstimator(cfg Config) *Estimator {
	return &Estimator{cfg: normalizeConfig(cfg)}
}

// Analyze is a one-shot dominant-wavelength estimate for a trace.
func Analyze(trace []float64, cfg Config) (Result, error) {
	return NewEstimator(cfg).Analyze(trace)
}

// Analyze estimates the dominant wavelength of the trace.
//
//nolint:funlen
func (e *Estimator) Analyze(trace []float64) (Result, error) {
	if len(trace) < minTraceLen {
		return Result{}, fmt.Errorf("wavelength: trace too short for spectrum analysis: %d", len(trace))
	}

	cfg := e.cfg

	fftSize := cfg.FFTSize
	if fftSize < len(trace) {
		fftSize = len(trace)
	}

	fftSize = nextPowerOf2(fftSize)

	minWL := cfg.MinWavelength
	if minWL == 0 {
		minWL = 2 * cfg.SampleDistance
	}

	if minWL < 2*cfg.SampleDistance {
		return Result{}, fmt.Errorf("wavelength: minimum wavelength below twice the sample distance: %g", minWL)
	}

	maxWL := cfg.MaxWavelength
	if maxWL == 0 {
		maxWL = float64(len(trace)) * cfg.SampleDistance
	}

	if maxWL <= minWL {
		return Result{}, fmt.Errorf("wavelength: search band is empty: [%g, %g]", minWL, maxWL)
	}

	centered := profile.RemoveMean(trace)

	coeffs := window.Generate(cfg.WindowType, len(centered))

	windowed, err := window.ApplyCoefficients(centered, coeffs)
	if err != nil {
		return Result{}, fmt.Errorf("wavelength: windowing failed: %w", err)
	}

	inData := make([]complex128, fftSize)
	for i, v := range windowed {
		inData[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Result{}, fmt.Errorf("wavelength: failed to create FFT plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, inData); err != nil {
		return Result{}, fmt.Errorf("wavelength: forward FFT failed: %w", err)
	}

	half := fftSize / 2
	mags := spectrum.Magnitude(out[:half+1])

	wls := make([]float64, half+1)
	wls[0] = math.Inf(1)

	for k := 1; k <= half; k++ {
		wls[k] = float64(fftSize) * cfg.SampleDistance / float64(k)
	}

	kMax := int(math.Floor(float64(fftSize) * cfg.SampleDistance / minWL))
	if kMax > half {
		kMax = half
	}

	kMin := int(math.Ceil(float64(fftSize) * cfg.SampleDistance / maxWL))
	if kMin < 1 {
		kMin = 1
	}

	if kMin > kMax {
		return Result{}, fmt.Errorf("wavelength: no spectrum bins inside [%g, %g]", minWL, maxWL)
	}

	best := kMin
	bestVal := mags[kMin]

	for k := kMin + 1; k <= kMax; k++ {
		if mags[k] > bestVal {
			best = k
			bestVal = mags[k]
		}
	}

	if bestVal == 0 {
		return Result{}, fmt.Errorf("wavelength: no periodic component found")
	}

	refined, peakVal := refinePeak(mags, best, half)

	lambda := float64(fftSize) * cfg.SampleDistance / refined

	amp, err := spectrum.AmplitudeAt(centered, lambda, cfg.SampleDistance)
	if err != nil {
		// Wavelength landed at the resolution limit; fall back to the
		// window-corrected spectrum estimate.
		amp = 2 * peakVal / sum(coeffs)
	}

	return Result{
		Wavelength:  lambda,
		Amplitude:   amp,
		Bin:         best,
		FFTSize:     fftSize,
		Magnitudes:  mags,
		Wavelengths: wls,
	}, nil
}

// refinePeak fits a parabola through the peak bin and its neighbors and
// returns the sub-bin peak position and estimated peak value.
func refinePeak(mags []float64, best, half int) (float64, float64) {
	if best <= 1 || best >= half {
		return float64(best), mags[best]
	}

	y1 := mags[best-1]
	y2 := mags[best]
	y3 := mags[best+1]

	den := y1 - 2*y2 + y3

	dx := 0.0
	if den != 0 {
		dx = 0.5 * (y1 - y3) / den
		// Far outside the neighbor spacing the fit is unreliable.
		if math.Abs(dx) > 0.9 {
			dx = 0
		}
	}

	return float64(best) + dx, y2 - 0.25*(y1-y3)*dx
}

func normalizeConfig(cfg Config) Config {
	if cfg.SampleDistance <= 0 {
		cfg.SampleDistance = defaultSampleDistance
	}

	if cfg.WindowType == 0 {
		cfg.WindowType = window.TypeHann
	}

	if cfg.MinWavelength < 0 {
		cfg.MinWavelength = 0
	}

	if cfg.MaxWavelength < 0 {
		cfg.MaxWavelength = 0
	}

	if cfg.FFTSize < 0 {
		cfg.FFTSize = 0
	}

	return cfg
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}

	return total
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
