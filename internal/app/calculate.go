package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/reducecalc/internal/calculator"
	"github.com/agbru/reducecalc/internal/cli"
	apperrors "github.com/agbru/reducecalc/internal/errors"
	"github.com/agbru/reducecalc/internal/format"
	"github.com/agbru/reducecalc/internal/logging"
	"github.com/agbru/reducecalc/internal/tracing"
	"github.com/agbru/reducecalc/internal/ui"
)

const (
	// progressMinInputs is the batch size from which the spinner is shown.
	progressMinInputs = 1000
	// maxLineLength bounds a single input line read from a file or stdin.
	maxLineLength = 1 << 20
)

// runCalculate evaluates every batch input and prints the results in order.
func (a *Application) runCalculate(ctx context.Context, calc *calculator.Calculator, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	inputs, err := a.gatherInputs()
	if err != nil {
		return a.fail(err)
	}

	traceCfg := tracing.DefaultConfig()
	traceCfg.ExporterType = tracing.ExporterType(a.Config.Trace)
	traceCfg.Version = Version
	traceCfg.Output = a.ErrWriter
	tracer, err := tracing.New(ctx, traceCfg)
	if err != nil {
		return a.fail(apperrors.NewConfigError("tracing: %v", err))
	}
	defer func() {
		if err := tracer.Shutdown(context.Background()); err != nil {
			a.logger.Error("trace shutdown failed", err)
		}
	}()

	runID := uuid.NewString()
	a.logger.Info("batch started",
		logging.String("run_id", runID),
		logging.Int("inputs", len(inputs)),
		logging.String("op", calc.Strategy().Name()),
		logging.String("separator", format.DescribeSeparator(calc.Separator())),
		logging.Int("workers", a.Config.Workers))

	var progress *cli.BatchProgress
	if !a.Config.Quiet && len(inputs) >= progressMinInputs && ui.IsTerminal(a.ErrWriter) {
		progress = cli.NewBatchProgress(len(inputs), a.ErrWriter)
		progress.Start()
	}

	start := time.Now()
	runCtx, runSpan := tracer.StartRun(ctx, runID, len(inputs))
	evs, err := evaluateAll(runCtx, calc, inputs, a.Config.Workers, tracer, progress)
	runSpan.End()
	if progress != nil {
		progress.Stop()
	}
	if err != nil {
		a.logger.Error("batch interrupted", err, logging.String("run_id", runID))
		return a.fail(err)
	}
	elapsed := time.Since(start)
	a.logger.Info("batch finished",
		logging.String("run_id", runID),
		logging.String("duration", format.FormatExecutionDuration(elapsed)),
		logging.String("rate", format.FormatRate(len(inputs), elapsed)))

	outputCfg := cli.OutputConfig{
		Format:    a.Config.Format,
		Quiet:     a.Config.Quiet,
		Verbose:   a.Config.Verbose,
		RunID:     runID,
		Separator: calc.Separator(),
	}

	if a.Config.OutputFile != "" {
		if err := cli.WriteResultsToFile(a.Config.OutputFile, evs, outputCfg); err != nil {
			return a.fail(err)
		}
		if !a.Config.Quiet {
			fmt.Fprintf(out, "%s✓ %d result(s) saved to: %s%s%s\n",
				ui.ColorGreen(), len(evs), ui.ColorCyan(), a.Config.OutputFile, ui.ColorReset())
		}
		return apperrors.ExitSuccess
	}

	if err := cli.DisplayResults(out, evs, outputCfg); err != nil {
		return a.fail(err)
	}
	return apperrors.ExitSuccess
}

// gatherInputs returns the batch inputs: the positional arguments, the lines
// of --input, or the lines of stdin when it is not a terminal.
func (a *Application) gatherInputs() ([]string, error) {
	switch {
	case len(a.Config.Inputs) > 0 && a.Config.InputFile != "":
		return nil, apperrors.NewConfigError("positional inputs and --input are mutually exclusive")
	case len(a.Config.Inputs) > 0:
		return a.Config.Inputs, nil
	case a.Config.InputFile == "-":
		return readLines(a.in, "stdin")
	case a.Config.InputFile != "":
		f, err := os.Open(a.Config.InputFile)
		if err != nil {
			return nil, apperrors.InputError{Source: a.Config.InputFile, Cause: err}
		}
		defer f.Close()
		return readLines(f, a.Config.InputFile)
	case a.stdinIsTerminal:
		return nil, apperrors.NewConfigError("no input: pass inputs as arguments, use --input FILE, or pipe them on stdin (see --help)")
	default:
		return readLines(a.in, "stdin")
	}
}

// readLines reads one input per line. Blank lines are kept: each one is an
// input that evaluates to 0.
func readLines(r io.Reader, source string) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.InputError{Source: source, Cause: err}
	}
	return lines, nil
}

// evaluateAll evaluates inputs concurrently, at most workers at a time, and
// returns the evaluations in input order. It stops early when ctx is done.
func evaluateAll(ctx context.Context, calc *calculator.Calculator, inputs []string, workers int, tracer *tracing.Tracer, progress *cli.BatchProgress) ([]calculator.Evaluation, error) {
	evs := make([]calculator.Evaluation, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, input := range inputs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, span := tracer.StartEvaluation(gctx, i, calc.Strategy().Name())
			evs[i] = calc.Evaluate(input)
			span.End(evs[i])
			if progress != nil {
				progress.Increment()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return evs, nil
}
