// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayResults].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteResultsToFile].

package cli

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/agbru/reducecalc/internal/calculator"
	apperrors "github.com/agbru/reducecalc/internal/errors"
	"github.com/agbru/reducecalc/internal/format"
	"github.com/agbru/reducecalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// Format is "text" or "json".
	Format string
	// Quiet prints bare results, one per line.
	Quiet bool
	// Verbose adds the token breakdown to text output.
	Verbose bool
	// RunID identifies the invocation in JSON records.
	RunID string
	// Separator is the separator the inputs were split on.
	Separator rune
	// Plain disables colors regardless of the active theme.
	Plain bool
}

// Number is a float64 that marshals to JSON as a number when finite and as
// a string ("+Inf", "-Inf", "NaN") otherwise.
type Number float64

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	v := float64(n)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return []byte(strconv.Quote(format.FormatNumber(v))), nil
	}
	return []byte(strconv.FormatFloat(v, 'g', -1, 64)), nil
}

// Record is the JSON rendering of one evaluation.
type Record struct {
	RunID     string   `json:"run_id"`
	Input     string   `json:"input"`
	Op        string   `json:"op"`
	Separator string   `json:"separator"`
	Tokens    []string `json:"tokens"`
	Values    []Number `json:"values"`
	Dropped   int      `json:"dropped"`
	Coerced   []string `json:"coerced"`
	Result    Number   `json:"result"`
}

// NewRecord builds the JSON record for ev. Slices are never nil so that the
// record always carries arrays rather than nulls.
func NewRecord(ev calculator.Evaluation, config OutputConfig) Record {
	rec := Record{
		RunID:     config.RunID,
		Input:     ev.Input,
		Op:        ev.Strategy,
		Separator: string(config.Separator),
		Tokens:    []string{},
		Values:    make([]Number, 0, len(ev.Values)),
		Dropped:   ev.Dropped,
		Coerced:   []string{},
		Result:    Number(ev.Result),
	}
	rec.Tokens = append(rec.Tokens, ev.Tokens...)
	rec.Coerced = append(rec.Coerced, ev.Coerced...)
	for _, v := range ev.Values {
		rec.Values = append(rec.Values, Number(v))
	}
	return rec
}

// FormatQuietResult formats a result for quiet mode output.
// Returns a single-line result suitable for scripting.
func FormatQuietResult(ev calculator.Evaluation) string {
	return format.FormatNumber(ev.Result)
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
func DisplayQuietResult(out io.Writer, ev calculator.Evaluation) {
	fmt.Fprintln(out, FormatQuietResult(ev))
}

// DisplayResult writes one evaluation in text form. Without Verbose only
// the result is printed; with it, the token breakdown precedes the result.
func DisplayResult(out io.Writer, ev calculator.Evaluation, config OutputConfig) {
	paint := func(color, s string) string {
		if config.Plain {
			return s
		}
		return ui.Colorize(color, s)
	}

	result := format.FormatNumber(ev.Result)
	if !config.Verbose {
		fmt.Fprintln(out, paint(ui.ColorGreen(), result))
		return
	}

	fmt.Fprintf(out, "%s  %s\n", paint(ui.ColorBold(), "input:  "), strconv.Quote(ev.Input))
	fmt.Fprintf(out, "%s  %s\n", paint(ui.ColorBold(), "op:     "), paint(ui.ColorMagenta(), ev.Strategy))
	fmt.Fprintf(out, "%s  %s\n", paint(ui.ColorBold(), "sep:    "), format.DescribeSeparator(config.Separator))
	fmt.Fprintf(out, "%s  %s\n", paint(ui.ColorBold(), "tokens: "), format.QuoteTokens(ev.Tokens))
	fmt.Fprintf(out, "%s  %s\n", paint(ui.ColorBold(), "values: "), format.FormatValues(ev.Values))
	fmt.Fprintf(out, "%s  %d\n", paint(ui.ColorBold(), "dropped:"), ev.Dropped)
	coerced := format.QuoteTokens(ev.Coerced)
	if len(ev.Coerced) > 0 {
		coerced = paint(ui.ColorYellow(), coerced)
	}
	fmt.Fprintf(out, "%s  %s\n", paint(ui.ColorBold(), "coerced:"), coerced)
	if ev.ShortCircuit {
		fmt.Fprintf(out, "%s  %s (empty input)\n", paint(ui.ColorBold(), "result: "), paint(ui.ColorGreen(), result))
		return
	}
	fmt.Fprintf(out, "%s  %s\n", paint(ui.ColorBold(), "result: "), paint(ui.ColorGreen(), result))
}

// DisplayJSON writes one evaluation as a single-line JSON object.
func DisplayJSON(out io.Writer, ev calculator.Evaluation, config OutputConfig) error {
	if err := json.NewEncoder(out).Encode(NewRecord(ev, config)); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return nil
}

// DisplayResults writes every evaluation, in order, in the configured format.
func DisplayResults(out io.Writer, evs []calculator.Evaluation, config OutputConfig) error {
	for i, ev := range evs {
		switch {
		case config.Format == "json":
			if err := DisplayJSON(out, ev, config); err != nil {
				return err
			}
		case config.Quiet:
			DisplayQuietResult(out, ev)
		default:
			if config.Verbose && i > 0 {
				fmt.Fprintln(out)
			}
			DisplayResult(out, ev, config)
		}
	}
	return nil
}

// WriteResultsToFile writes the evaluations to path, creating parent
// directories as needed. Text written to a file is never colored.
// Filesystem failures are returned as apperrors.InputError.
func WriteResultsToFile(path string, evs []calculator.Evaluation, config OutputConfig) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return apperrors.InputError{Source: path, Cause: fmt.Errorf("failed to create directory: %w", err)}
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.InputError{Source: path, Cause: fmt.Errorf("failed to create output file: %w", err)}
	}

	config.Plain = true
	if err := DisplayResults(file, evs, config); err != nil {
		file.Close()
		return apperrors.InputError{Source: path, Cause: err}
	}
	if err := file.Close(); err != nil {
		return apperrors.InputError{Source: path, Cause: err}
	}
	return nil
}
