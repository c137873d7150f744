package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/agbru/reducecalc/internal/calculator"
	"github.com/agbru/reducecalc/internal/reduction"
)

func runREPL(t *testing.T, input string) (*REPL, string) {
	t.Helper()
	useNoColor(t)
	repl := NewREPL(calculator.New(), reduction.NewDefaultRegistry(), REPLConfig{})
	var out bytes.Buffer
	repl.SetInput(strings.NewReader(input))
	repl.SetOutput(&out)
	repl.Start()
	return repl, out.String()
}

func TestREPL_Calculate(t *testing.T) {
	_, out := runREPL(t, "1, 2, 3\n0, null, 2\nexit\n")

	for _, want := range []string{"sum> 6\n", "sum> 2\n", "token(s) counted as 0: [\" null\"]", "Goodbye!"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestREPL_Commands(t *testing.T) {
	repl, out := runREPL(t, "op multiply\n2,3,4\nsep ;\n2;5\nop median\nsep ::\nstatus\nquit\n")

	for _, want := range []string{
		"Strategy changed to: product",
		"product> 24\n",
		"Separator changed to: ';'",
		"product> 10\n",
		"Unknown strategy: median",
		"Invalid separator",
		"Strategy:   product",
		"Separator:  ';'",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if repl.Calculator().Strategy().Name() != "product" || repl.Calculator().Separator() != ';' {
		t.Error("REPL should keep the selected strategy and separator")
	}
}

func TestREPL_Usage(t *testing.T) {
	_, out := runREPL(t, "op\nsep\nhelp\n")
	for _, want := range []string{"Usage: op <name>", "Available strategies: multiply, product, sum", "Usage: sep <c>", "Available commands:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestREPL_VerboseAndEOF(t *testing.T) {
	// The last line has no newline and must still be evaluated.
	_, out := runREPL(t, "verbose\n1, ,x")
	for _, want := range []string{"Token breakdown: enabled", `coerced:  ["x"]`, "result:   1", "Goodbye!"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestREPL_BlankLinesIgnored(t *testing.T) {
	_, out := runREPL(t, "\n   \nexit\n")
	if strings.Contains(out, "sum> 0") {
		t.Errorf("blank lines should not be evaluated:\n%s", out)
	}
}

func TestREPL_StopsOnReadError(t *testing.T) {
	useNoColor(t)
	repl := NewREPL(calculator.New(), reduction.NewDefaultRegistry(), REPLConfig{})
	var out bytes.Buffer
	repl.SetInput(iotest.ErrReader(errors.New("device gone")))
	repl.SetOutput(&out)
	repl.Start()

	if got := strings.Count(out.String(), "Read error: device gone"); got != 1 {
		t.Errorf("read error reported %d times, want 1:\n%s", got, out.String())
	}
}
