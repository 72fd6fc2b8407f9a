package fourier

import (
	"errors"

	"github.com/mjibson/go-dsp/fft"
)

var (
	ErrEmptyInput     = errors.New("fourier: empty input")
	ErrLengthMismatch = errors.New("fourier: dst and src lengths differ")
)

// Transform computes forward and inverse discrete Fourier transforms over
// complex bins. Implementations must accept any positive transform length,
// not only powers of two. dst and src must have equal length; they may be
// the same slice.
type Transform interface {
	Forward(dst, src []complex128) error
	Inverse(dst, src []complex128) error
}

// GoDSP is the default [Transform], backed by github.com/mjibson/go-dsp.
// It is stateless and safe for concurrent use. The inverse transform is
// normalized by 1/N, so Inverse(Forward(x)) recovers x.
type GoDSP struct{}

// Forward computes the forward DFT of src into dst.
func (GoDSP) Forward(dst, src []complex128) error {
	if err := validateBuffers(dst, src); err != nil {
		return err
	}
	copy(dst, fft.FFT(src))
	return nil
}

// Inverse computes the normalized inverse DFT of src into dst.
func (GoDSP) Inverse(dst, src []complex128) error {
	if err := validateBuffers(dst, src); err != nil {
		return err
	}
	copy(dst, fft.IFFT(src))
	return nil
}

func validateBuffers(dst, src []complex128) error {
	if len(src) == 0 {
		return ErrEmptyInput
	}
	if len(dst) != len(src) {
		return ErrLengthMismatch
	}
	return nil
}
