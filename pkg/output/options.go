package output

import "io"

// Option configures a Printer.
type Option func(*Printer)

// WithWriter sets where the printer writes. A nil writer is ignored.
func WithWriter(w io.Writer) Option {
	return func(p *Printer) {
		if w != nil {
			p.w = w
		}
	}
}

// WithStyles styles text printers with provider. Providers that are not
// available on the current output are ignored.
func WithStyles(provider StyleProvider) Option {
	return func(p *Printer) {
		if provider != nil && provider.IsAvailable() {
			p.styles = provider
		}
	}
}

// PlainText disables styles and strips ANSI sequences from everything the
// printer writes, raw Write calls included.
func PlainText() Option {
	return func(p *Printer) {
		p.format = FormatText
		p.plain = true
	}
}

// TestMode is PlainText, named for the tests that compare output verbatim.
func TestMode() Option {
	return PlainText()
}

// JSON makes the printer write JSON messages.
func JSON() Option {
	return func(p *Printer) {
		p.format = FormatJSON
	}
}

// Silent discards all output.
func Silent() Option {
	return func(p *Printer) {
		p.silent = true
	}
}

// WithPrefix starts every message with prefix.
func WithPrefix(prefix string) Option {
	return func(p *Printer) {
		p.prefix = prefix
	}
}
