// Package roughness computes ISO 4287 amplitude parameters of a
// roughness profile about its mean line.
package roughness

import "math"

// Params holds the amplitude parameters of a roughness profile. All
// heights are deviations from the mean line, in the input's unit.
type Params struct {
	Length int
	Ra     float64 // arithmetic mean deviation
	Rq     float64 // root mean square deviation
	Rz     float64 // mean peak-to-valley height over five segments
	Rp     float64 // largest peak height
	Rv     float64 // deepest valley depth (positive)
	Rt     float64 // total height, Rp + Rv
	Rsk    float64 // skewness of the height distribution
	Rku    float64 // kurtosis of the height distribution (Gaussian = 3)
}

// Calculate computes all amplitude parameters. The higher moments use
// Welford's online algorithm for numerical stability; Ra needs the mean
// line first and is accumulated in a second pass.
func Calculate(profile []float64) Params {
	n := len(profile)
	if n == 0 {
		return Params{}
	}

	// Welford accumulators.
	var (
		mean float64
		m2   float64
		m3   float64
		m4   float64
	)

	maxVal := profile[0]
	minVal := profile[0]

	for i, x := range profile {
		ni := float64(i + 1)
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i)

		// M4 must be updated before M3, and M3 before M2.
		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN

		if x > maxVal {
			maxVal = x
		}
		if x < minVal {
			minVal = x
		}
	}

	nf := float64(n)
	variance := m2 / nf
	rq := math.Sqrt(variance)

	var sumAbs float64
	for _, x := range profile {
		sumAbs += math.Abs(x - mean)
	}

	var rsk, rku float64
	if variance > 0 {
		rsk = (m3 / nf) / (variance * rq)
		rku = (m4 / nf) / (variance * variance)
	}

	return Params{
		Length: n,
		Ra:     sumAbs / nf,
		Rq:     rq,
		Rz:     meanSegmentPeakToValley(profile),
		Rp:     maxVal - mean,
		Rv:     mean - minVal,
		Rt:     maxVal - minVal,
		Rsk:    rsk,
		Rku:    rku,
	}
}

// Ra returns the arithmetic mean deviation from the mean line.
func Ra(profile []float64) float64 {
	n := len(profile)
	if n == 0 {
		return 0
	}
	var mean float64
	for _, x := range profile {
		mean += x
	}
	mean /= float64(n)

	var sumAbs float64
	for _, x := range profile {
		sumAbs += math.Abs(x - mean)
	}
	return sumAbs / float64(n)
}

// Rq returns the root mean square deviation from the mean line.
func Rq(profile []float64) float64 {
	n := len(profile)
	if n == 0 {
		return 0
	}
	var mean float64
	for _, x := range profile {
		mean += x
	}
	mean /= float64(n)

	var sumSq float64
	for _, x := range profile {
		d := x - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(n))
}

// Rt returns the total profile height, the distance between the highest
// peak and the deepest valley.
func Rt(profile []float64) float64 {
	if len(profile) == 0 {
		return 0
	}
	maxVal := profile[0]
	minVal := profile[0]
	for _, x := range profile[1:] {
		if x > maxVal {
			maxVal = x
		}
		if x < minVal {
			minVal = x
		}
	}
	return maxVal - minVal
}

// meanSegmentPeakToValley implements Rz: the profile is split into five
// equal segments and the per-segment peak-to-valley heights are
// averaged. Profiles shorter than five samples degenerate to Rt.
func meanSegmentPeakToValley(profile []float64) float64 {
	n := len(profile)
	if n == 0 {
		return 0
	}
	if n < 5 {
		return Rt(profile)
	}

	var sum float64
	for s := 0; s < 5; s++ {
		start := s * n / 5
		end := (s + 1) * n / 5
		sum += Rt(profile[start:end])
	}
	return sum / 5
}
