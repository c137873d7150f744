// Package config defines the application's configuration, parsed from
// command-line flags, REDUCECALC_* environment variables and an optional
// YAML file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"
	"slices"
	"strings"
	"unicode/utf8"

	apperrors "github.com/agbru/reducecalc/internal/errors"
	"github.com/agbru/reducecalc/internal/logging"
)

// EnvPrefix is the prefix shared by every environment variable override.
const EnvPrefix = "REDUCECALC_"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Trace exporters.
const (
	TraceNone   = "none"
	TraceStdout = "stdout"
)

var (
	validFormats = []string{FormatText, FormatJSON}
	validTraces  = []string{TraceNone, TraceStdout}
	validThemes  = []string{"dark", "light", "none"}
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Op is the name of the reduction strategy ("sum", "product", ...).
	Op string
	// Separator is the single character delimiting tokens. The escapes
	// "\t" and "tab" are accepted for a tab character.
	Separator string
	// Inputs are the positional arguments, one input string each.
	Inputs []string
	// InputFile names a file holding one input per line ("-" for stdin).
	InputFile string
	// OutputFile, when set, receives the results instead of stdout.
	OutputFile string
	// Format selects the result rendering: "text" or "json".
	Format string
	// Quiet prints bare results only.
	Quiet bool
	// Verbose adds the token breakdown to text output.
	Verbose bool
	// NoColor disables ANSI colors.
	NoColor bool
	// Theme is the color theme name.
	Theme string
	// Interactive starts the line-oriented REPL.
	Interactive bool
	// TUI starts the full-screen live calculator.
	TUI bool
	// Completion, when set, prints a completion script for that shell.
	Completion string
	// LogLevel is the minimum zerolog level written to stderr.
	LogLevel string
	// Trace selects the trace exporter: "none" or "stdout".
	Trace string
	// MetricsFile, when set, receives a Prometheus text dump at exit.
	MetricsFile string
	// Workers bounds the number of inputs evaluated concurrently in batch mode.
	Workers int
	// ConfigFile is the YAML file the other settings may come from.
	ConfigFile string
}

// Default returns the configuration used when nothing is specified.
func Default() AppConfig {
	return AppConfig{
		Op:        "sum",
		Separator: ",",
		Format:    FormatText,
		Theme:     "dark",
		LogLevel:  "warn",
		Trace:     TraceNone,
		Workers:   runtime.NumCPU(),
	}
}

// SeparatorRune returns the configured separator as a rune. It assumes the
// configuration has been validated.
func (c AppConfig) SeparatorRune() rune {
	r, _ := utf8.DecodeRuneInString(normalizeSeparator(c.Separator))
	return r
}

func normalizeSeparator(s string) string {
	switch strings.ToLower(s) {
	case `\t`, "tab":
		return "\t"
	case "space":
		return " "
	}
	return s
}

// ParseSeparator converts a separator setting to a rune. Besides a single
// character it accepts the names "tab" (or the escape \t) and "space".
func ParseSeparator(s string) (rune, error) {
	n := normalizeSeparator(s)
	if utf8.RuneCountInString(n) != 1 {
		return 0, apperrors.ValidationError{Field: "sep", Message: fmt.Sprintf("must be exactly one character, got %q", s)}
	}
	r, _ := utf8.DecodeRuneInString(n)
	return r, nil
}

// ParseConfig parses command-line arguments, then applies the YAML file and
// environment overrides for every flag that was not set explicitly.
// Priority: CLI flags > environment variables > config file > defaults.
//
// Parameters:
//   - programName: The program name shown in usage output.
//   - args: The arguments, without the program name.
//   - errorWriter: Where usage and flag errors are written.
//   - availableOps: The strategy names accepted for --op.
//
// Returns:
//   - AppConfig: The parsed and validated configuration.
//   - error: flag.ErrHelp when help was requested, or a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableOps []string) (AppConfig, error) {
	cfg := Default()
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [flags] [input ...]\n\n", programName)
		fmt.Fprintf(errorWriter, "Reduces delimiter-separated numbers to one value per input.\n")
		fmt.Fprintf(errorWriter, "Inputs come from the arguments, from -f FILE, or from stdin, one per line.\n")
		fmt.Fprintf(errorWriter, "Place inputs that begin with '-' after -- (for example: %s -- \"-x,1\").\n\n", programName)
		fmt.Fprintf(errorWriter, "Flags:\n")
		fs.PrintDefaults()
	}

	opHelp := fmt.Sprintf("Reduction strategy (%s)", strings.Join(availableOps, ", "))
	fs.StringVar(&cfg.Op, "op", cfg.Op, opHelp)
	fs.StringVar(&cfg.Separator, "sep", cfg.Separator, "Single character separating the numbers of an input (\\t or tab for a tab, space for a space)")
	fs.StringVar(&cfg.InputFile, "input", "", "Read inputs from a file, one per line (- for stdin)")
	fs.StringVar(&cfg.InputFile, "f", "", "Read inputs from a file (shorthand)")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write results to a file instead of stdout")
	fs.StringVar(&cfg.OutputFile, "o", "", "Write results to a file (shorthand)")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "Output format (text, json)")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print bare results only")
	fs.BoolVar(&cfg.Quiet, "q", false, "Quiet mode (shorthand)")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Show how every input was tokenized")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose mode (shorthand)")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output")
	fs.StringVar(&cfg.Theme, "theme", cfg.Theme, "Color theme (dark, light, none)")
	fs.BoolVar(&cfg.Interactive, "interactive", false, "Start the interactive prompt")
	fs.BoolVar(&cfg.Interactive, "i", false, "Interactive prompt (shorthand)")
	fs.BoolVar(&cfg.TUI, "tui", false, "Start the full-screen live calculator")
	fs.StringVar(&cfg.Completion, "completion", "", "Print a completion script (bash, zsh, fish, powershell)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level written to stderr (debug, info, warn, error)")
	fs.StringVar(&cfg.Trace, "trace", cfg.Trace, "Trace exporter (none, stdout)")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write Prometheus metrics to a file at exit")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Inputs evaluated concurrently in batch mode")
	fs.StringVar(&cfg.ConfigFile, "config", "", "YAML configuration file")

	if err := fs.Parse(separateInputs(args)); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}
	cfg.Inputs = fs.Args()

	if !isFlagSet(fs, "config") {
		if v, ok := lookupEnv("CONFIG"); ok {
			cfg.ConfigFile = v
		}
	}
	if cfg.ConfigFile != "" {
		fileCfg, err := LoadFile(cfg.ConfigFile)
		if err != nil {
			err = apperrors.NewConfigError("config file: %v", err)
			fmt.Fprintln(errorWriter, "Error:", err)
			return AppConfig{}, err
		}
		fileCfg.apply(&cfg, fs)
	}
	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(availableOps); err != nil {
		fmt.Fprintln(errorWriter, "Error:", err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks that every field holds an accepted value.
func (c AppConfig) Validate(availableOps []string) error {
	if len(availableOps) > 0 && !slices.Contains(availableOps, strings.ToLower(strings.TrimSpace(c.Op))) {
		return apperrors.NewConfigError("unknown operation %q (accepted values: %s)", c.Op, strings.Join(availableOps, ", "))
	}
	if _, err := ParseSeparator(c.Separator); err != nil {
		return apperrors.WrapError(err, "invalid configuration")
	}
	if !slices.Contains(validFormats, c.Format) {
		return apperrors.NewConfigError("unknown format %q (accepted values: %s)", c.Format, strings.Join(validFormats, ", "))
	}
	if !slices.Contains(validTraces, c.Trace) {
		return apperrors.NewConfigError("unknown trace exporter %q (accepted values: %s)", c.Trace, strings.Join(validTraces, ", "))
	}
	if !slices.Contains(validThemes, c.Theme) {
		return apperrors.NewConfigError("unknown theme %q (accepted values: %s)", c.Theme, strings.Join(validThemes, ", "))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("invalid log level %q", c.LogLevel)
	}
	if c.Workers < 1 {
		return apperrors.WrapError(
			apperrors.ValidationError{Field: "workers", Message: "must be at least 1"},
			"invalid configuration")
	}
	if c.Interactive && c.TUI {
		return apperrors.NewConfigError("--interactive and --tui are mutually exclusive")
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("--quiet and --verbose are mutually exclusive")
	}
	return nil
}
