// Package output is the output handle handed to command handlers. A Printer
// writes plain, styled or JSON text and is also an io.Writer, so handlers may
// ask for either.
package output

import "strings"

// SemanticType is the meaning of a piece of output. Themes style output by
// semantic type.
type SemanticType string

const (
	SemanticPlain   SemanticType = "plain"
	SemanticInfo    SemanticType = "info"
	SemanticSuccess SemanticType = "success"
	SemanticWarning SemanticType = "warning"
	SemanticError   SemanticType = "error"

	// SemanticCommand marks command names in listings.
	SemanticCommand SemanticType = "command"
	// SemanticKeyword marks section headers such as "Usage:".
	SemanticKeyword SemanticType = "keyword"
	// SemanticHighlight marks the application version.
	SemanticHighlight SemanticType = "highlight"
	// SemanticComment marks descriptions and default values.
	SemanticComment SemanticType = "comment"
)

// StyleProvider supplies the style of each semantic type. Theme is the
// lipgloss implementation.
type StyleProvider interface {
	GetStyle(semantic string) TextStyle
	// IsAvailable reports whether the styles can be rendered on the
	// provider's output. Printers stay plain otherwise.
	IsAvailable() bool
}

// TextStyle renders text. lipgloss.Style satisfies it.
type TextStyle interface {
	Render(strs ...string) string
}

// symbols prefix status lines when no colors are available.
var symbols = map[SemanticType]string{
	SemanticInfo:    "ℹ ",
	SemanticSuccess: "✓ ",
	SemanticWarning: "⚠ ",
	SemanticError:   "✗ ",
}

type symbolStyle string

func (s symbolStyle) Render(strs ...string) string {
	return string(s) + strings.Join(strs, " ")
}

// PlainStyleProvider renders status lines with a leading symbol and
// everything else as is. It is always available.
type PlainStyleProvider struct{}

// GetStyle implements StyleProvider.
func (PlainStyleProvider) GetStyle(semantic string) TextStyle {
	return symbolStyle(symbols[SemanticType(semantic)])
}

// IsAvailable implements StyleProvider.
func (PlainStyleProvider) IsAvailable() bool {
	return true
}
