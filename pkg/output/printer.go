package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
)

// Format selects how a Printer encodes what it writes.
type Format int

const (
	// FormatText writes text, styled when the printer has available styles.
	FormatText Format = iota
	// FormatJSON writes one {"type", "message"} object per message.
	FormatJSON
)

// Printer is the output of a command. It writes semantic lines and raw
// bytes, and may be shared by nested commands.
type Printer struct {
	mu     sync.Mutex
	w      io.Writer
	styles StyleProvider
	format Format
	plain  bool
	silent bool
	prefix string
}

// NewPrinter creates a printer writing unstyled text to os.Stdout unless
// options say otherwise.
func NewPrinter(options ...Option) *Printer {
	p := &Printer{w: os.Stdout}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Print writes text as is, without a trailing newline.
func (p *Printer) Print(text string) { p.emit(SemanticPlain, text, false) }

// Printf formats like fmt.Sprintf and writes the result without a newline.
func (p *Printer) Printf(format string, args ...any) {
	p.emit(SemanticPlain, fmt.Sprintf(format, args...), false)
}

// Println writes text followed by a newline.
func (p *Printer) Println(text string) { p.emit(SemanticPlain, text, true) }

// Info writes an informational status line. Without styles, status lines
// start with a symbol such as "ℹ ".
func (p *Printer) Info(text string) { p.emit(SemanticInfo, text, true) }

// Success writes a status line starting with "✓ " when unstyled.
func (p *Printer) Success(text string) { p.emit(SemanticSuccess, text, true) }

// Warning writes a status line starting with "⚠ " when unstyled.
func (p *Printer) Warning(text string) { p.emit(SemanticWarning, text, true) }

// Error writes a status line starting with "✗ " when unstyled.
func (p *Printer) Error(text string) { p.emit(SemanticError, text, true) }

// Line writes text styled for semantic, followed by a newline.
func (p *Printer) Line(semantic SemanticType, text string) {
	p.emit(semantic, text, true)
}

// Render returns text styled for semantic without writing it, for lines
// mixing several styles.
func (p *Printer) Render(semantic SemanticType, text string) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if style, ok := p.style(semantic); ok {
		return style.Render(text)
	}
	return text
}

// Write implements io.Writer. Plain printers strip ANSI sequences and JSON
// printers wrap the bytes into a plain message.
func (p *Printer) Write(b []byte) (int, error) {
	if p.silent {
		return len(b), nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	text := string(b)
	switch {
	case p.format == FormatJSON:
		text = encodeJSON(SemanticPlain, strings.TrimSuffix(text, "\n"))
	case p.plain:
		text = ansi.Strip(text)
	}
	if _, err := io.WriteString(p.w, text); err != nil {
		return 0, err
	}
	return len(b), nil
}

// Styled reports whether the printer renders styles.
func (p *Printer) Styled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, ok := p.style(SemanticPlain)
	return ok
}

// style returns the style of semantic when the printer renders styles.
func (p *Printer) style(semantic SemanticType) (TextStyle, bool) {
	if p.format == FormatJSON || p.plain || p.styles == nil || !p.styles.IsAvailable() {
		return nil, false
	}
	return p.styles.GetStyle(string(semantic)), true
}

func (p *Printer) emit(semantic SemanticType, text string, newline bool) {
	if p.silent {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var line string
	switch style, styled := p.style(semantic); {
	case p.format == FormatJSON:
		line = encodeJSON(semantic, text)
	case styled:
		line = style.Render(text)
	default:
		if p.plain {
			text = ansi.Strip(text)
		}
		line = symbolStyle(symbols[semantic]).Render(text)
	}
	if newline && !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	_, _ = io.WriteString(p.w, p.prefix+line)
}

type jsonMessage struct {
	Type    SemanticType `json:"type"`
	Message string       `json:"message"`
}

func encodeJSON(semantic SemanticType, text string) string {
	data, err := json.Marshal(jsonMessage{Type: semantic, Message: ansi.Strip(text)})
	if err != nil {
		return text + "\n"
	}
	return string(data) + "\n"
}
