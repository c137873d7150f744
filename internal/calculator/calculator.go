//go:generate mockgen -source=calculator.go -destination=../mocks/mock_recorder.go -package=mocks

package calculator

import (
	"github.com/agbru/reducecalc/internal/logging"
	"github.com/agbru/reducecalc/internal/reduction"
)

// DefaultSeparator is the token separator used when none is configured.
const DefaultSeparator = ','

// Recorder observes every evaluation. Implementations must be safe for
// concurrent use and must not retain the Evaluation's slices.
type Recorder interface {
	ObserveEvaluation(ev Evaluation)
}

// Calculator splits delimited text into numbers and reduces them with its
// strategy. A Calculator is immutable after construction, so one instance may
// be used from any number of goroutines.
type Calculator struct {
	strategy  reduction.Strategy
	separator rune
	logger    logging.Logger
	recorder  Recorder
}

// Option configures a Calculator during construction.
type Option func(*Calculator)

// WithStrategy sets the reduction strategy. A nil strategy leaves the
// default (Sum) in place.
func WithStrategy(s reduction.Strategy) Option {
	return func(c *Calculator) {
		if s != nil {
			c.strategy = s
		}
	}
}

// WithSeparator sets the single character that delimits tokens.
func WithSeparator(sep rune) Option {
	return func(c *Calculator) { c.separator = sep }
}

// WithLogger attaches a logger receiving a debug entry per coerced token.
func WithLogger(l logging.Logger) Option {
	return func(c *Calculator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRecorder attaches a Recorder notified after every evaluation.
func WithRecorder(r Recorder) Option {
	return func(c *Calculator) { c.recorder = r }
}

// New creates a Calculator. Without options it sums comma-separated values.
func New(opts ...Option) *Calculator {
	c := &Calculator{
		strategy:  reduction.Default(),
		separator: DefaultSeparator,
		logger:    logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// With returns a copy of c with opts applied. c itself is left untouched.
func (c *Calculator) With(opts ...Option) *Calculator {
	clone := *c
	for _, opt := range opts {
		opt(&clone)
	}
	return &clone
}

// Strategy returns the configured reduction strategy.
func (c *Calculator) Strategy() reduction.Strategy { return c.strategy }

// Separator returns the configured token separator.
func (c *Calculator) Separator() rune { return c.separator }

// Calculate reduces the numbers found in input to a single value.
//
// Empty input yields 0 without consulting the strategy. Empty and
// whitespace-only tokens are skipped; tokens that are not numbers count as 0.
// Calculate never fails: callers cannot tell "no valid numbers" from an
// explicit zero.
func (c *Calculator) Calculate(input string) float64 {
	return c.Evaluate(input).Result
}

// CalculateNullable is Calculate for an optional input. A nil input yields 0.
func (c *Calculator) CalculateNullable(input *string) float64 {
	if input == nil {
		return 0
	}
	return c.Calculate(*input)
}

// Evaluate performs the same computation as Calculate and also reports how
// the input was tokenized and interpreted.
func (c *Calculator) Evaluate(input string) Evaluation {
	ev := Evaluation{
		Input:    input,
		Strategy: c.strategy.Name(),
	}
	if input == "" {
		ev.ShortCircuit = true
		c.observe(ev)
		return ev
	}

	ev.Tokens = split(input, c.separator)
	ev.Values = make([]float64, 0, len(ev.Tokens))
	for i, tok := range ev.Tokens {
		if isBlank(tok) {
			ev.Dropped++
			continue
		}
		v, ok := parseToken(tok)
		if !ok {
			ev.Coerced = append(ev.Coerced, tok)
			c.logger.Debug("coerced non-numeric token to zero",
				logging.String("token", tok),
				logging.Int("position", i),
				logging.String("op", ev.Strategy))
		}
		ev.Values = append(ev.Values, v)
	}

	ev.Result = c.strategy.Operate(ev.Values)
	c.observe(ev)
	return ev
}

func (c *Calculator) observe(ev Evaluation) {
	if c.recorder != nil {
		c.recorder.ObserveEvaluation(ev)
	}
}
