// Command waviness splits surface height traces into waviness and roughness.
//
// Usage:
//
//	waviness [flags]
//
// The input is a single column of height values from a CSV file, an XLSX
// workbook, or standard input. The trace is mirror-padded, transformed, and
// split at the cutoff wavelength; the filtered profiles are written as CSV
// columns alongside the input heights. With -params or -wavelength and no
// -out, the command only reports and writes no CSV.
//
// Examples:
//
//	waviness -in trace.csv -out filtered.csv
//	waviness -in run.xlsx -sheet Run1 -col 2 -dx 0.5 -cutoff 2500 -out w.csv
//	waviness -in trace.csv -cutoff 0 -params
//	waviness -in trace.csv -level -wavelength
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/xuri/excelize/v2"

	"github.com/alexander-milne/fft-waviness-filter/dsp/profile"
	"github.com/alexander-milne/fft-waviness-filter/measure/cutoff"
	"github.com/alexander-milne/fft-waviness-filter/measure/wavelength"
	"github.com/alexander-milne/fft-waviness-filter/stats/roughness"
	"github.com/alexander-milne/fft-waviness-filter/waviness"
)

func main() {
	in := flag.String("in", "", "input file (.csv or .xlsx); empty reads CSV from stdin")
	sheet := flag.String("sheet", "", "XLSX sheet name (default first sheet)")
	col := flag.Int("col", 1, "1-based column holding the height values")
	dx := flag.Float64("dx", waviness.DefaultSampleDistance, "sample distance in micrometres")
	cutoffWL := flag.Float64("cutoff", waviness.DefaultCutoff, "cutoff wavelength in micrometres; 0 selects it from Ra per ISO 4288")
	gaussian := flag.Bool("gaussian", false, "use the Gaussian transmission mask instead of the brick wall")
	level := flag.Bool("level", false, "remove the least-squares mean line before filtering")
	out := flag.String("out", "", "output CSV file; empty writes to stdout")
	params := flag.Bool("params", false, "print roughness parameters of the roughness profile")
	dominant := flag.Bool("wavelength", false, "print the dominant wavelength of the input trace")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: waviness [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Splits a surface height trace into waviness and roughness profiles.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  waviness -in trace.csv -out filtered.csv\n")
		fmt.Fprintf(os.Stderr, "  waviness -in run.xlsx -sheet Run1 -col 2 -cutoff 2500 -out w.csv\n")
		fmt.Fprintf(os.Stderr, "  waviness -in trace.csv -cutoff 0 -params\n")
		fmt.Fprintf(os.Stderr, "  waviness -in trace.csv -level -wavelength\n")
	}
	flag.Parse()

	trace, err := readInput(*in, *sheet, *col)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to read input: %v\n", err)
		os.Exit(1)
	}

	if *level {
		leveled, line, err := profile.Level(trace, *dx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: failed to fit mean line: %v\n", err)
			os.Exit(1)
		}

		trace = leveled
		fmt.Fprintf(os.Stderr, "removed mean line: slope %.6g, intercept %.6g\n", line.Slope, line.Intercept)
	}

	chosen := *cutoffWL
	if chosen == 0 {
		band, ra, err := cutoff.Iterate(0, func(wl float64) (float64, error) {
			res, err := newFilter(*dx, wl, *gaussian).Decompose(trace)
			if err != nil {
				return 0, err
			}

			return roughness.Ra(res.Roughness), nil
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: cutoff selection failed: %v\n", err)
			os.Exit(1)
		}

		chosen = band.Wavelength
		fmt.Fprintf(os.Stderr, "selected cutoff: %g um (Ra %.4g um, evaluation length %g um)\n",
			band.Wavelength, ra, band.EvaluationLength)
	}

	filter := newFilter(*dx, chosen, *gaussian)

	res, err := filter.Decompose(trace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: filtering failed: %v\n", err)
		os.Exit(1)
	}

	if *params {
		printParams(roughness.Calculate(res.Roughness), chosen, *gaussian)
	}

	if *dominant {
		printDominant(trace, *dx)
	}

	reportOnly := (*params || *dominant) && *out == ""
	if reportOnly {
		return
	}

	if err := writeCSV(*out, trace, res, *dx); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to write output: %v\n", err)
		os.Exit(1)
	}
}

func newFilter(dx, cutoffWL float64, gaussian bool) *waviness.Filter {
	opts := []waviness.Option{
		waviness.WithSampleDistance(dx),
		waviness.WithCutoff(cutoffWL),
	}
	if gaussian {
		opts = append(opts, waviness.WithMask(waviness.MaskGaussian))
	}

	return waviness.New(opts...)
}

func printParams(p roughness.Params, cutoffWL float64, gaussian bool) {
	mask := waviness.MaskBrickWall
	if gaussian {
		mask = waviness.MaskGaussian
	}

	fmt.Printf("Roughness parameters (cutoff %g um, %s mask):\n", cutoffWL, mask)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Parameter\tValue\n")
	fmt.Fprintf(tw, "---------\t-----\n")
	fmt.Fprintf(tw, "Ra [um]\t%.4f\n", p.Ra)
	fmt.Fprintf(tw, "Rq [um]\t%.4f\n", p.Rq)
	fmt.Fprintf(tw, "Rz [um]\t%.4f\n", p.Rz)
	fmt.Fprintf(tw, "Rt [um]\t%.4f\n", p.Rt)
	fmt.Fprintf(tw, "Rp [um]\t%.4f\n", p.Rp)
	fmt.Fprintf(tw, "Rv [um]\t%.4f\n", p.Rv)
	fmt.Fprintf(tw, "Rsk\t%.4f\n", p.Rsk)
	fmt.Fprintf(tw, "Rku\t%.4f\n", p.Rku)

	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush parameter table: %v\n", err)
	}
}

func printDominant(trace []float64, dx float64) {
	res, err := wavelength.Analyze(trace, wavelength.Config{SampleDistance: dx})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: wavelength analysis failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("dominant wavelength: %.4g um (amplitude %.4g um, bin %d of %d)\n",
		res.Wavelength, res.Amplitude, res.Bin, res.FFTSize)
}

// readInput loads the height column from path. An .xlsx extension selects the
// Excel reader; everything else, including stdin, is treated as CSV.
func readInput(path, sheet string, col int) ([]float64, error) {
	if col < 1 {
		return nil, fmt.Errorf("col must be >= 1")
	}

	if path == "" {
		return readCSV(os.Stdin, col)
	}

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readXLSX(path, sheet, col)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readCSV(f, col)
}

func readCSV(r io.Reader, col int) ([]float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comment = '#'

	var out []float64

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, err
		}

		if len(rec) < col {
			continue
		}

		v, ok := parseCell(rec[col-1])
		if !ok {
			continue
		}

		out = append(out, v)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no numeric values found in column %d", col)
	}

	return out, nil
}

// readXLSX reads numeric values from the given .xlsx file. It loads the first
// sheet if sheet is empty and reads the 1-based column col.
func readXLSX(path, sheet string, col int) ([]float64, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("no sheets in workbook")
		}

		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	out := make([]float64, 0, len(rows))

	for _, r := range rows {
		if len(r) < col {
			continue
		}

		v, ok := parseCell(r[col-1])
		if !ok {
			continue
		}

		out = append(out, v)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no numeric values found in %s (sheet=%s col=%d)", path, sheet, col)
	}

	return out, nil
}

// parseCell interprets one cell, tolerating headers, blanks, and comma
// decimal separators.
func parseCell(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	s = strings.ReplaceAll(s, ",", ".")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	return v, true
}

func writeCSV(path string, trace []float64, res waviness.Result, dx float64) error {
	var w io.Writer = os.Stdout

	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()

		w = f
	}

	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"position", "height", "waviness", "roughness"}); err != nil {
		return err
	}

	for i, h := range trace {
		rec := []string{
			formatFloat(float64(i) * dx),
			formatFloat(h),
			formatFloat(res.Waviness[i]),
			formatFloat(res.Roughness[i]),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
