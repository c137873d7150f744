package calculator

// Evaluation describes one pass of the calculator over an input string.
type Evaluation struct {
	// Input is the raw text that was evaluated.
	Input string
	// Strategy is the name of the reduction strategy applied.
	Strategy string
	// Tokens holds the substrings produced by splitting on the separator,
	// before blank tokens were dropped. Nil for empty input.
	Tokens []string
	// Values holds one number per non-blank token, in input order.
	Values []float64
	// Dropped counts the empty or whitespace-only tokens that were skipped.
	Dropped int
	// Coerced lists the non-blank tokens that did not parse and counted as 0.
	Coerced []string
	// Result is the value returned by Calculate.
	Result float64
	// ShortCircuit is true when the input was empty and the strategy was
	// not consulted.
	ShortCircuit bool
}

// Parsed returns the number of tokens that parsed as numbers.
func (ev Evaluation) Parsed() int {
	return len(ev.Values) - len(ev.Coerced)
}
