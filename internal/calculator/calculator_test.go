package calculator

import (
	"bytes"
	"math"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/agbru/reducecalc/internal/logging"
	"github.com/agbru/reducecalc/internal/reduction"
)

func TestCalculate_Scenarios(t *testing.T) {
	t.Parallel()
	sum := New()
	product := New(WithStrategy(reduction.Product{}))

	tests := []struct {
		name  string
		calc  *Calculator
		input string
		want  float64
	}{
		{"sum of three", sum, "1, 2, 3", 6},
		{"blank tokens ignored", sum, "0, , ", 0},
		{"negative values", sum, "1, -1, 9", 9},
		{"empty input", sum, "", 0},
		{"non-numeric token counts as zero", sum, "0, null, 2", 2},
		{"only separators", sum, ",,", 0},
		{"product", product, "2,3,4", 24},
		{"product of nothing", product, ",,", 1},
		{"product of whitespace tokens", product, " , \t ,", 1},
		{"product empty input short-circuits", product, "", 0},
		{"product with a non-numeric token", product, "2, x, 4", 0},
		{"decimals and exponent", sum, "0.5, 1e1, -2.5E0", 8},
		{"explicit plus sign", sum, "+1,+2", 3},
		{"surrounding tabs and newlines", sum, "\t1\n,\r\n2 ", 3},
		{"single token", sum, "42", 42},
		{"whitespace only input", sum, "   ", 0},
		{"underscore digit separators count as zero", sum, "1_000, 1", 1},
		{"hex float counts as zero", sum, "0x10, 2", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.calc.Calculate(tt.input); got != tt.want {
				t.Errorf("Calculate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCalculateNullable(t *testing.T) {
	t.Parallel()
	c := New()
	if got := c.CalculateNullable(nil); got != 0 {
		t.Errorf("CalculateNullable(nil) = %v, want 0", got)
	}
	in := "1, 2, 3"
	if got := c.CalculateNullable(&in); got != 6 {
		t.Errorf("CalculateNullable(%q) = %v, want 6", in, got)
	}
	// Product of a nil input is still 0: the strategy is never consulted.
	if got := New(WithStrategy(reduction.Product{})).CalculateNullable(nil); got != 0 {
		t.Errorf("Product CalculateNullable(nil) = %v, want 0", got)
	}
}

func TestCalculate_Separator(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		sep   rune
		input string
		want  float64
	}{
		{"semicolon", ';', "1;2;3", 6},
		{"semicolon leaves commas inside tokens", ';', "1,5;2", 2},
		{"pipe", '|', "10| 20 |30", 60},
		{"space", ' ', "1  2   3", 6},
		{"tab", '\t', "4\t4", 8},
		{"multibyte rune", '·', "1·2·3", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := New(WithSeparator(tt.sep))
			if got := c.Calculate(tt.input); got != tt.want {
				t.Errorf("Calculate(%q) with separator %q = %v, want %v", tt.input, tt.sep, got, tt.want)
			}
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()
	c := New()
	if c.Strategy().Name() != "sum" {
		t.Errorf("default strategy = %q, want sum", c.Strategy().Name())
	}
	if c.Separator() != ',' {
		t.Errorf("default separator = %q, want ','", c.Separator())
	}

	// A nil strategy keeps the default rather than leaving the calculator unusable.
	c = New(WithStrategy(nil), WithLogger(nil))
	if got := c.Calculate("2,2"); got != 4 {
		t.Errorf("Calculate with nil strategy option = %v, want 4", got)
	}
}

func TestWith_DoesNotMutateReceiver(t *testing.T) {
	t.Parallel()
	base := New()
	derived := base.With(WithStrategy(reduction.Product{}), WithSeparator(';'))

	if base.Strategy().Name() != "sum" || base.Separator() != ',' {
		t.Errorf("With mutated the original calculator: %s %q", base.Strategy().Name(), base.Separator())
	}
	if got := derived.Calculate("2;5"); got != 10 {
		t.Errorf("derived.Calculate = %v, want 10", got)
	}
}

func TestEvaluate_Breakdown(t *testing.T) {
	t.Parallel()
	ev := New().Evaluate("1, ,abc, 2,")

	wantTokens := []string{"1", " ", "abc", " 2", ""}
	if !reflect.DeepEqual(ev.Tokens, wantTokens) {
		t.Errorf("Tokens = %q, want %q", ev.Tokens, wantTokens)
	}
	if want := []float64{1, 0, 2}; !reflect.DeepEqual(ev.Values, want) {
		t.Errorf("Values = %v, want %v", ev.Values, want)
	}
	if ev.Dropped != 2 {
		t.Errorf("Dropped = %d, want 2", ev.Dropped)
	}
	if want := []string{"abc"}; !reflect.DeepEqual(ev.Coerced, want) {
		t.Errorf("Coerced = %q, want %q", ev.Coerced, want)
	}
	if ev.Parsed() != 2 {
		t.Errorf("Parsed() = %d, want 2", ev.Parsed())
	}
	if ev.Result != 3 || ev.Strategy != "sum" || ev.ShortCircuit {
		t.Errorf("unexpected evaluation: %+v", ev)
	}

	empty := New().Evaluate("")
	if !empty.ShortCircuit || empty.Tokens != nil || empty.Result != 0 {
		t.Errorf("empty input evaluation = %+v, want short-circuit with no tokens", empty)
	}
}

func TestParseToken(t *testing.T) {
	t.Parallel()
	tests := []struct {
		tok    string
		want   float64
		wantOK bool
	}{
		{"1", 1, true},
		{" -3.25 ", -3.25, true},
		{"+7", 7, true},
		{"1e3", 1000, true},
		{".5", 0.5, true},
		{"5.", 5, true},
		{"null", 0, false},
		{"1,000", 0, false},
		{"12abc", 0, false},
		{"0x10", 0, false},
		{"-0X1p4", 0, false},
		{"1_000", 0, false},
		{"--1", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			t.Parallel()
			got, ok := parseToken(tt.tok)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("parseToken(%q) = (%v, %v), want (%v, %v)", tt.tok, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseToken_SpecialValues(t *testing.T) {
	t.Parallel()
	if v, ok := parseToken("1e400"); !ok || !math.IsInf(v, 1) {
		t.Errorf("parseToken(1e400) = (%v, %v), want (+Inf, true)", v, ok)
	}
	if v, ok := parseToken("-Infinity"); !ok || !math.IsInf(v, -1) {
		t.Errorf("parseToken(-Infinity) = (%v, %v), want (-Inf, true)", v, ok)
	}
	if v, ok := parseToken("NaN"); !ok || !math.IsNaN(v) {
		t.Errorf("parseToken(NaN) = (%v, %v), want (NaN, true)", v, ok)
	}
}

func TestEvaluate_LogsCoercedTokens(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := logging.NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel))

	got := New(WithLogger(logger)).Calculate("1, oops, 2")
	if got != 3 {
		t.Fatalf("Calculate = %v, want 3", got)
	}
	out := buf.String()
	for _, want := range []string{"coerced non-numeric token to zero", "oops", `"position":1`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output should contain %q, got: %s", want, out)
		}
	}
}

// TestCalculate_ConcurrentUse checks that a shared Calculator gives the same
// answer from many goroutines at once.
func TestCalculate_ConcurrentUse(t *testing.T) {
	t.Parallel()
	c := New(WithStrategy(reduction.Product{}), WithSeparator(';'))

	var wg sync.WaitGroup
	errs := make(chan float64, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := c.Calculate("2; 3; x; 4"); got != 0 {
				errs <- got
			}
			if got := c.Calculate("2; 3; 4"); got != 24 {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Errorf("concurrent Calculate returned %v", got)
	}
}
