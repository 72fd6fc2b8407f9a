// Package fourier defines the discrete Fourier transform capability used
// by the filtering and analysis packages, decoupled from any particular
// FFT implementation. The default backend handles arbitrary transform
// lengths, including non-powers-of-two.
package fourier
