package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/reducecalc/internal/calculator"
	"github.com/agbru/reducecalc/internal/cli"
	"github.com/agbru/reducecalc/internal/config"
	apperrors "github.com/agbru/reducecalc/internal/errors"
	"github.com/agbru/reducecalc/internal/logging"
	"github.com/agbru/reducecalc/internal/metrics"
	"github.com/agbru/reducecalc/internal/reduction"
	"github.com/agbru/reducecalc/internal/tui"
	"github.com/agbru/reducecalc/internal/ui"
)

// Application represents the reducecalc application instance.
type Application struct {
	Config    config.AppConfig
	Registry  *reduction.Registry
	ErrWriter io.Writer

	in              io.Reader
	stdinIsTerminal bool
	logger          logging.Logger
	metrics         *metrics.Metrics
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithRegistry sets the strategy registry the application selects from.
func WithRegistry(r *reduction.Registry) AppOption {
	return func(a *Application) { a.Registry = r }
}

// WithInput replaces stdin. isTerminal tells whether in is an interactive
// terminal, in which case it is never read as batch input.
func WithInput(in io.Reader, isTerminal bool) AppOption {
	return func(a *Application) {
		a.in = in
		a.stdinIsTerminal = isTerminal
	}
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{
		ErrWriter:       errWriter,
		in:              os.Stdin,
		stdinIsTerminal: ui.IsTerminal(os.Stdin),
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.Registry == nil {
		app.Registry = reduction.GlobalRegistry()
	}

	programName := "reducecalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Registry.List())
	if err != nil {
		return nil, err
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode and returns
// the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	level, err := logging.ParseLevel(a.Config.LogLevel)
	if err != nil {
		return a.fail(apperrors.NewConfigError("invalid log level %q", a.Config.LogLevel))
	}
	logging.SetGlobalLevel(level)
	a.logger = logging.NewLogger(a.ErrWriter, "reducecalc")
	ui.InitTheme(a.Config.Theme, a.Config.NoColor, out)

	strategy, err := a.Registry.Get(a.Config.Op)
	if err != nil {
		return a.fail(apperrors.WrapError(apperrors.NewConfigError("%v", err), "invalid configuration"))
	}
	a.metrics = metrics.NewMetrics()
	calc := calculator.New(
		calculator.WithStrategy(strategy),
		calculator.WithSeparator(a.Config.SeparatorRune()),
		calculator.WithLogger(a.logger),
		calculator.WithRecorder(a.metrics),
	)

	var code int
	switch {
	case a.Config.TUI:
		code = a.runTUI(ctx, calc)
	case a.Config.Interactive:
		code = a.runREPL(calc, out)
	default:
		code = a.runCalculate(ctx, calc, out)
	}

	if a.Config.MetricsFile != "" {
		if err := a.metrics.WriteTextfile(a.Config.MetricsFile); err != nil {
			a.logger.Error("writing metrics file failed", err, logging.String("path", a.Config.MetricsFile))
			if code == apperrors.ExitSuccess {
				code = apperrors.ExitErrorGeneric
			}
		}
	}
	return code
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Registry.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runREPL starts the line-oriented interactive prompt on the application's input.
func (a *Application) runREPL(calc *calculator.Calculator, out io.Writer) int {
	repl := cli.NewREPL(calc, a.Registry, cli.REPLConfig{Verbose: a.Config.Verbose})
	repl.SetInput(a.in)
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// runTUI launches the full-screen live calculator. Keystrokes are not
// logged or counted.
func (a *Application) runTUI(ctx context.Context, calc *calculator.Calculator) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	var strategies []reduction.Strategy
	for _, name := range a.Registry.Canonical() {
		strategies = append(strategies, a.Registry.MustGet(name))
	}
	quiet := calc.With(calculator.WithLogger(logging.NewNopLogger()), calculator.WithRecorder(nil))
	return tui.Run(ctx, quiet, strategies, Version)
}

// fail reports err on the error writer and returns its exit code.
func (a *Application) fail(err error) int {
	fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
	return apperrors.ExitCodeFor(err)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
