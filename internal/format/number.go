// Package format holds pure string formatting helpers shared by the CLI,
// the REPL and the TUI.
package format

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders v with the fewest digits that read back to the same
// float64, without exponent for ordinary magnitudes (6, -2.5, 1000000) and
// with one for very large or small ones (1e+21, 1e-07).
func FormatNumber(v float64) string {
	abs := math.Abs(v)
	if abs == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FormatValues renders a sequence of numbers as "[1, 2, 3]".
func FormatValues(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = FormatNumber(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// QuoteTokens renders tokens as a bracketed, quoted list: ["1" " " "x"].
func QuoteTokens(tokens []string) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = strconv.Quote(t)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// DescribeSeparator names a separator rune in a readable way, spelling out
// invisible characters.
func DescribeSeparator(sep rune) string {
	switch sep {
	case '\t':
		return "tab"
	case ' ':
		return "space"
	}
	return strconv.QuoteRune(sep)
}
