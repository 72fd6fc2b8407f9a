package wavelength_test

import (
	"fmt"
	"math"

	"github.com/alexander-milne/fft-waviness-filter/measure/wavelength"
)

func ExampleAnalyze() {
	// A milled surface with a 102.4 um feed mark, sampled every 0.8 um.
	trace := make([]float64, 1024)
	for i := range trace {
		trace[i] = 12 + 2*math.Sin(2*math.Pi*float64(i)/128)
	}

	res, err := wavelength.Analyze(trace, wavelength.Config{SampleDistance: 0.8})
	if err != nil {
		panic(err)
	}

	fmt.Printf("wavelength: %.1f\n", res.Wavelength)
	fmt.Printf("amplitude: %.2f\n", res.Amplitude)
	// Output:
	// wavelength: 102.4
	// amplitude: 2.00
}
