package ui

// ColorReset returns the escape code clearing all formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorBold returns the escape code for bold text.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the escape code for underlined text.
func ColorUnderline() string { return GetCurrentTheme().Underline }

// ColorRed is used for errors.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen is used for results and success messages.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow is used for commands and coerced tokens.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue is used for secondary labels.
func ColorBlue() string { return GetCurrentTheme().Secondary }

// ColorMagenta is used for informational values.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan is the primary accent color.
func ColorCyan() string { return GetCurrentTheme().Primary }

// Colorize wraps s in color and a reset. With the no-color theme active it
// returns s unchanged.
func Colorize(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + ColorReset()
}
