// Package waviness separates a measured surface trace into its waviness
// and roughness components by spectral low-pass filtering.
//
// The trace is mirror-padded to three times its length, transformed to
// the frequency domain, masked beyond the bin corresponding to the cutoff
// wavelength, and transformed back; the middle third of the
// reconstruction is the waviness profile. Mirror padding keeps the trace
// continuous at both ends, so the circular filtering does not smear edge
// discontinuities into the result.
//
// # Usage
//
// One-shot filtering with explicit parameters (micrometres):
//
//	w, err := waviness.Compute(heights, 0.8, 800)
//
// For repeated use or non-default behavior, configure a Filter:
//
//	f := waviness.New(
//	    waviness.WithSampleDistance(0.5),
//	    waviness.WithCutoff(2500),
//	)
//	res, err := f.Decompose(heights)
//	// res.Waviness, res.Roughness, res.CutoffIndex, res.ImagResidue
//
// # Cutoff mask
//
// The default mask is a hard cutoff: every bin in [k, N-k) is zeroed,
// where k = max(1, round(N*spacing/cutoff)) and N is the padded length.
// Wavelengths shorter than the cutoff are removed outright; the DC bin
// always survives, so the mean height of the trace is preserved.
// [MaskGaussian] selects the ISO 16610-21 Gaussian transmission curve
// instead, which rolls off smoothly and passes exactly 50% at the cutoff
// wavelength.
//
// Filters are stateless between calls and safe for concurrent use.
package waviness
