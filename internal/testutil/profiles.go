package testutil

import (
	"math"
	"math/rand"
)

// SineProfile generates a sinusoidal surface trace with the given spatial
// wavelength (same unit as sampleDistance) and amplitude.
func SineProfile(wavelength, sampleDistance, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * sampleDistance / wavelength
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// NoiseProfile generates a rough trace of uniform noise with a fixed seed
// for reproducibility.
func NoiseProfile(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// RampProfile generates a tilted trace: height = slope*i*sampleDistance + intercept.
func RampProfile(slope, intercept, sampleDistance float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = slope*float64(i)*sampleDistance + intercept
	}
	return out
}

// FlatProfile generates a constant-height trace.
func FlatProfile(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}
