package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// SupportsColor reports whether w renders colors, honoring NO_COLOR and
// CLICOLOR_FORCE.
func SupportsColor(w io.Writer) bool {
	return termenv.NewOutput(w).EnvColorProfile() != termenv.Ascii
}

// ForWriter returns the printer a command writes to when it is run with w.
// A Printer is used as is and nil discards everything. Terminals that
// support colors get the default theme; any other writer gets plain text.
func ForWriter(w io.Writer) *Printer {
	switch w := w.(type) {
	case *Printer:
		return w
	case nil:
		return NewPrinter(WithWriter(io.Discard), Silent())
	case *os.File:
		if SupportsColor(w) {
			if theme, err := NewTheme("default", w); err == nil {
				return NewPrinter(WithWriter(w), WithStyles(theme))
			}
		}
	}
	return NewPrinter(WithWriter(w), PlainText())
}
