package calculator

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// split cuts input at every occurrence of sep. Adjacent separators produce
// empty tokens, which the caller drops.
func split(input string, sep rune) []string {
	return strings.Split(input, string(sep))
}

func isBlank(tok string) bool {
	return strings.TrimFunc(tok, unicode.IsSpace) == ""
}

// parseToken reads tok as a decimal floating point number, ignoring
// surrounding whitespace and accepting a leading sign, an exponent, "Inf" and
// "NaN". Hex floats and underscore digit separators are rejected. It
// reports false for anything else; the value is then 0.
//
// Values beyond the float64 range parse as ±Inf.
func parseToken(tok string) (float64, bool) {
	s := strings.TrimFunc(tok, unicode.IsSpace)
	if s == "" || hasBasePrefix(s) || strings.ContainsRune(s, '_') {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return v, true
		}
		return 0, false
	}
	return v, true
}

// hasBasePrefix reports whether s is written with a 0x/0X prefix, which
// strconv accepts as a hexadecimal float but is not a decimal number.
func hasBasePrefix(s string) bool {
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
