// Package profile provides primitives for uniformly sampled surface
// traces: mirror padding and middle-third extraction for edge-effect-free
// filtering, mean removal, and least-squares leveling.
package profile

import (
	"errors"

	"gonum.org/v1/gonum/stat"
)

var (
	ErrEmptyProfile          = errors.New("profile: profile is empty")
	ErrInvalidSampleDistance = errors.New("profile: sample distance must be positive")
	ErrNotTriple             = errors.New("profile: length is not a multiple of three")
	ErrTooShort              = errors.New("profile: need at least two samples to fit a line")
)

// Reverse returns a reversed copy of the trace.
func Reverse(p []float64) []float64 {
	out := make([]float64, len(p))
	for i, v := range p {
		out[len(p)-1-i] = v
	}
	return out
}

// Mirror returns the trace extended by reflected copies on both sides:
// reverse(p) ++ p ++ reverse(p), three times the input length. Reflection
// keeps the extension continuous in value at both seams, which suppresses
// the wrap-around edge artifacts of circular spectral filtering.
func Mirror(p []float64) ([]float64, error) {
	n := len(p)
	if n == 0 {
		return nil, ErrEmptyProfile
	}
	out := make([]float64, 3*n)
	for i, v := range p {
		out[n-1-i] = v
		out[n+i] = v
		out[3*n-1-i] = v
	}
	return out, nil
}

// MiddleThird returns the central section of a mirror-padded trace,
// undoing [Mirror]. The input length must be a positive multiple of three.
func MiddleThird(padded []float64) ([]float64, error) {
	if len(padded) == 0 {
		return nil, ErrEmptyProfile
	}
	if len(padded)%3 != 0 {
		return nil, ErrNotTriple
	}
	n := len(padded) / 3
	out := make([]float64, n)
	copy(out, padded[n:2*n])
	return out, nil
}

// Mean returns the arithmetic mean height of the trace, or 0 for an empty
// trace. Kahan summation keeps the result stable for long traces.
func Mean(p []float64) float64 {
	if len(p) == 0 {
		return 0
	}
	var sum, c float64
	for _, x := range p {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}
	return sum / float64(len(p))
}

// RemoveMean returns a copy of the trace shifted so its mean height is zero.
func RemoveMean(p []float64) []float64 {
	m := Mean(p)
	out := make([]float64, len(p))
	for i, v := range p {
		out[i] = v - m
	}
	return out
}

// Line is the least-squares mean line of a trace: height = Slope*x + Intercept,
// with x in the same unit as the sample distance.
type Line struct {
	Slope     float64
	Intercept float64
}

// At returns the line height at position x.
func (l Line) At(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// FitLine fits the least-squares mean line through the trace, with sample i
// at position i*sampleDistance.
func FitLine(p []float64, sampleDistance float64) (Line, error) {
	if len(p) == 0 {
		return Line{}, ErrEmptyProfile
	}
	if len(p) < 2 {
		return Line{}, ErrTooShort
	}
	if sampleDistance <= 0 {
		return Line{}, ErrInvalidSampleDistance
	}
	x := make([]float64, len(p))
	for i := range x {
		x[i] = float64(i) * sampleDistance
	}
	alpha, beta := stat.LinearRegression(x, p, nil, false)
	return Line{Slope: beta, Intercept: alpha}, nil
}

// Level removes the least-squares mean line from the trace, the standard
// tilt correction applied to raw profilometer output before filtering.
// It returns the leveled trace and the removed line.
func Level(p []float64, sampleDistance float64) ([]float64, Line, error) {
	line, err := FitLine(p, sampleDistance)
	if err != nil {
		return nil, Line{}, err
	}
	out := make([]float64, len(p))
	for i, v := range p {
		out[i] = v - line.At(float64(i)*sampleDistance)
	}
	return out, line, nil
}
