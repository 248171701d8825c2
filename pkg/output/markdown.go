package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// DefaultWordWrap is the width markdown is wrapped at.
const DefaultWordWrap = 80

// markdownStyles maps theme names to glamour styles.
var markdownStyles = map[string]string{
	"default": "auto",
	"mono":    "ascii",
}

// RenderMarkdown renders markdown for a terminal. style is a glamour style
// such as "dark", "light", "ascii" or "notty"; "auto" and "" detect the
// terminal background.
func RenderMarkdown(markdown, style string, width int) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", nil
	}
	if width <= 0 {
		width = DefaultWordWrap
	}

	options := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == "auto" {
		options = append(options, glamour.WithAutoStyle())
	} else {
		options = append(options, glamour.WithStylePath(style))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	rendered, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return rendered, nil
}

// Markdown writes a markdown document. Printers styled with a theme render
// it with glamour; every other printer writes the markdown source.
func (p *Printer) Markdown(markdown string) error {
	p.mu.Lock()
	style, render := p.markdownStyle()
	p.mu.Unlock()

	text := markdown
	if render {
		rendered, err := RenderMarkdown(markdown, style, DefaultWordWrap)
		if err != nil {
			return err
		}
		text = rendered
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := p.Write([]byte(text))
	return err
}

func (p *Printer) markdownStyle() (string, bool) {
	if _, styled := p.style(SemanticPlain); !styled {
		return "", false
	}
	theme, ok := p.styles.(*Theme)
	if !ok {
		return "", false
	}
	if style, ok := markdownStyles[theme.Name]; ok {
		return style, true
	}
	return "auto", true
}
