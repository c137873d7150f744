package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/agbru/reducecalc/internal/calculator"
	"github.com/agbru/reducecalc/internal/config"
	"github.com/agbru/reducecalc/internal/format"
	"github.com/agbru/reducecalc/internal/reduction"
	"github.com/agbru/reducecalc/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Verbose shows the token breakdown of every calculation.
	Verbose bool
}

// REPL represents an interactive calculator session. Every line that is not
// a command is evaluated as one input.
type REPL struct {
	config   REPLConfig
	calc     *calculator.Calculator
	registry *reduction.Registry
	in       io.Reader
	out      io.Writer
}

// NewREPL creates a new REPL instance.
//
// Parameters:
//   - calc: The calculator used until the user changes strategy or separator.
//   - registry: The strategies the "op" command can select.
//   - config: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance.
func NewREPL(calc *calculator.Calculator, registry *reduction.Registry, config REPLConfig) *REPL {
	return &REPL{
		config:   config,
		calc:     calc,
		registry: registry,
		in:       os.Stdin,
		out:      os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Calculator returns the calculator currently in use.
func (r *REPL) Calculator() *calculator.Calculator {
	return r.calc
}

// Start begins the interactive REPL session.
// It continuously reads user input and processes commands until
// the user exits or EOF is reached.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+r.calc.Strategy().Name()+"> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && input != "") {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}

		input = strings.TrimRight(input, "\r\n")
		if strings.TrimSpace(input) != "" && !r.processCommand(input) {
			return // Exit command received
		}
		if err != nil {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sReduce Calculator - Interactive Mode%s         %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<numbers>%s     - Reduce the numbers, e.g. 1, 2, 3\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sop <name>%s     - Change strategy (%s)\n", ui.ColorYellow(), ui.ColorReset(), strings.Join(r.registry.List(), ", "))
	fmt.Fprintf(r.out, "  %ssep <c>%s       - Change separator (one character, tab or space)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sverbose%s       - Toggle the token breakdown\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s        - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s          - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s  - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand parses and executes a user command. A line whose first
// word is not a command is calculated as is.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "op":
		r.cmdOp(args)
	case "sep":
		r.cmdSep(args)
	case "verbose":
		r.cmdVerbose()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		r.calculate(input)
	}

	return true
}

// calculate evaluates one input with the current calculator.
func (r *REPL) calculate(input string) {
	ev := r.calc.Evaluate(input)
	DisplayResult(r.out, ev, OutputConfig{
		Verbose:   r.config.Verbose,
		Separator: r.calc.Separator(),
	})
	if !r.config.Verbose && len(ev.Coerced) > 0 {
		fmt.Fprintf(r.out, "  %s%d token(s) counted as 0: %s%s\n",
			ui.ColorYellow(), len(ev.Coerced), format.QuoteTokens(ev.Coerced), ui.ColorReset())
	}
}

// cmdOp handles the "op" command.
func (r *REPL) cmdOp(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: op <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available strategies: %s\n", strings.Join(r.registry.List(), ", "))
		return
	}

	strategy, err := r.registry.Get(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "%sUnknown strategy: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		fmt.Fprintf(r.out, "Available strategies: %s\n", strings.Join(r.registry.List(), ", "))
		return
	}

	r.calc = r.calc.With(calculator.WithStrategy(strategy))
	fmt.Fprintf(r.out, "Strategy changed to: %s%s%s\n", ui.ColorGreen(), strategy.Name(), ui.ColorReset())
}

// cmdSep handles the "sep" command.
func (r *REPL) cmdSep(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: sep <c>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	sep, err := config.ParseSeparator(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid separator: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	r.calc = r.calc.With(calculator.WithSeparator(sep))
	fmt.Fprintf(r.out, "Separator changed to: %s%s%s\n", ui.ColorGreen(), format.DescribeSeparator(sep), ui.ColorReset())
}

// cmdVerbose toggles the token breakdown.
func (r *REPL) cmdVerbose() {
	r.config.Verbose = !r.config.Verbose
	status := "disabled"
	if r.config.Verbose {
		status = "enabled"
	}
	fmt.Fprintf(r.out, "Token breakdown: %s%s%s\n", ui.ColorGreen(), status, ui.ColorReset())
}

// cmdStatus displays current REPL configuration.
func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Strategy:   %s%s%s\n", ui.ColorCyan(), r.calc.Strategy().Name(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Separator:  %s%s%s\n", ui.ColorCyan(), format.DescribeSeparator(r.calc.Separator()), ui.ColorReset())
	verbose := "no"
	if r.config.Verbose {
		verbose = "yes"
	}
	fmt.Fprintf(r.out, "  Verbose:    %s%s%s\n", ui.ColorCyan(), verbose, ui.ColorReset())
	fmt.Fprintln(r.out)
}
