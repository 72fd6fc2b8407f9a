package spectrum

import (
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// planar is pooled scratch for unpacking complex bins into separate
// real and imaginary slices, the layout the vecmath kernels consume.
type planar struct {
	re, im []float64
}

var planarPool = sync.Pool{
	New: func() any { return new(planar) },
}

func (p *planar) fill(in []complex128) {
	n := len(in)
	if cap(p.re) < n {
		p.re = make([]float64, n)
		p.im = make([]float64, n)
	}
	p.re = p.re[:n]
	p.im = p.im[:n]
	for i, c := range in {
		p.re[i] = real(c)
		p.im[i] = imag(c)
	}
}

// Magnitude returns |X[k]| for each spectrum bin of a transformed trace.
// The heavy lifting runs through algo-vecmath, which dispatches to SIMD
// kernels where the CPU provides them; scratch memory is pooled, so in
// steady state only the output slice is allocated.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	s := planarPool.Get().(*planar)
	s.fill(in)
	vecmath.Magnitude(out, s.re, s.im)
	planarPool.Put(s)
	return out
}

// MagnitudeFromParts computes |X[k]| = sqrt(re[k]^2 + im[k]^2) into dst,
// for callers that already hold the spectrum in planar form. No
// allocation; the three slices must share one length.
func MagnitudeFromParts(dst, re, im []float64) {
	vecmath.Magnitude(dst, re, im)
}

// Power returns |X[k]|^2 for each spectrum bin of a transformed trace.
// Pooling and SIMD dispatch behave as in [Magnitude].
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	s := planarPool.Get().(*planar)
	s.fill(in)
	vecmath.Power(out, s.re, s.im)
	planarPool.Put(s)
	return out
}

// PowerFromParts computes |X[k]|^2 = re[k]^2 + im[k]^2 into dst, for
// callers that already hold the spectrum in planar form. No allocation;
// the three slices must share one length.
func PowerFromParts(dst, re, im []float64) {
	vecmath.Power(dst, re, im)
}
