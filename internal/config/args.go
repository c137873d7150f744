package config

import "strings"

// valueFlags lists the flags that consume the following argument unless
// written as -name=value. Every other flag is boolean.
var valueFlags = map[string]bool{
	"op":           true,
	"sep":          true,
	"input":        true,
	"f":            true,
	"output":       true,
	"o":            true,
	"format":       true,
	"theme":        true,
	"completion":   true,
	"log-level":    true,
	"trace":        true,
	"metrics-file": true,
	"workers":      true,
	"config":       true,
}

// TakesValue reports whether the flag named by arg ("-op", "--sep", ...)
// consumes the next argument.
func TakesValue(arg string) bool {
	name := strings.TrimLeft(arg, "-")
	if strings.Contains(name, "=") {
		return false
	}
	return valueFlags[name]
}

// IsFlag reports whether arg is parsed as a flag: it starts with a dash, is
// not a lone "-" (stdin), and is not a negative number such as "-1, 2".
func IsFlag(arg string) bool {
	return len(arg) >= 2 && arg[0] == '-' && !looksNumeric(arg)
}

func looksNumeric(arg string) bool {
	c := arg[1]
	return (c >= '0' && c <= '9') || c == '.'
}

// separateInputs inserts "--" before the first argument that starts with a
// minus sign but is a number, so the flag parser does not reject it as an
// unknown flag.
func separateInputs(args []string) []string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return args
		case len(arg) >= 2 && arg[0] == '-' && looksNumeric(arg):
			out := make([]string, 0, len(args)+1)
			out = append(out, args[:i]...)
			out = append(out, "--")
			return append(out, args[i:]...)
		case !IsFlag(arg):
			return args
		case TakesValue(arg):
			i++
		}
	}
	return args
}
