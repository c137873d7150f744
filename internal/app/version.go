package app

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/reducecalc/internal/config"
)

// Build information, overridden at link time:
//
//	go build -ldflags "-X github.com/agbru/reducecalc/internal/app.Version=v1.0.0"
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args request the version, before any flag
// parsing happens. Scanning stops where flag parsing would: at "--" or at the
// first input argument. Values of flags such as --op are skipped.
func HasVersionFlag(args []string) bool {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--", !config.IsFlag(arg):
			return false
		case arg == "--version", arg == "-version", arg == "-V":
			return true
		case config.TakesValue(arg):
			i++
		}
	}
	return false
}

// PrintVersion writes the build information to out.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "reducecalc %s\n", Version)
	fmt.Fprintf(out, "  commit:  %s\n", Commit)
	fmt.Fprintf(out, "  built:   %s\n", BuildDate)
	fmt.Fprintf(out, "  go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
