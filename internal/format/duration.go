package format

import (
	"fmt"
	"strconv"
	"time"
)

// FormatExecutionDuration renders a batch duration with the coarsest unit that
// keeps it readable: µs below a millisecond, ms below a second, and
// time.Duration's own form above.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.String()
	}
}

// FormatRate renders how many inputs were evaluated per second over d,
// rounded to a whole number. A non-positive duration yields "n/a".
func FormatRate(inputs int, d time.Duration) string {
	if d <= 0 {
		return "n/a"
	}
	perSecond := float64(inputs) / d.Seconds()
	return strconv.FormatFloat(perSecond, 'f', 0, 64) + "/s"
}
