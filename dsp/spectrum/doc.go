// Package spectrum provides spectrum-domain utilities for surface traces.
//
// The package intentionally does not implement FFT itself. It operates on
// complex spectrum bins produced by external FFT backends, and additionally
// offers a Goertzel-style probe that evaluates a single spatial wavelength
// directly from trace samples.
package spectrum
