package output

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

//go:embed themes/*.yaml
var themeFiles embed.FS

// ThemeConfig is the YAML form of a theme.
type ThemeConfig struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description,omitempty"`
	Styles      map[string]StyleConfig `yaml:"styles"`
}

// StyleConfig is the YAML form of one semantic style. Colors are either a
// single color string or a {light, dark} pair.
type StyleConfig struct {
	Foreground    any   `yaml:"foreground,omitempty"`
	Background    any   `yaml:"background,omitempty"`
	Bold          *bool `yaml:"bold,omitempty"`
	Italic        *bool `yaml:"italic,omitempty"`
	Underline     *bool `yaml:"underline,omitempty"`
	Strikethrough *bool `yaml:"strikethrough,omitempty"`
}

// Theme is a StyleProvider rendering lipgloss styles for one output.
type Theme struct {
	Name     string
	renderer *lipgloss.Renderer
	styles   map[string]lipgloss.Style
}

// ThemeNames lists the embedded themes.
func ThemeNames() []string {
	entries, err := themeFiles.ReadDir("themes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())))
	}
	sort.Strings(names)
	return names
}

// NewTheme loads the embedded theme name for rendering to w. The color
// profile is detected from w and the environment.
func NewTheme(name string, w io.Writer) (*Theme, error) {
	data, err := themeFiles.ReadFile(path.Join("themes", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("unknown theme %q", name)
	}
	return LoadTheme(data, w)
}

// LoadTheme parses a YAML theme for rendering to w.
func LoadTheme(data []byte, w io.Writer) (*Theme, error) {
	var config ThemeConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}
	if w == nil {
		w = os.Stdout
	}

	t := &Theme{
		Name:     config.Name,
		renderer: lipgloss.NewRenderer(w),
		styles:   make(map[string]lipgloss.Style, len(config.Styles)),
	}
	for semantic, style := range config.Styles {
		t.styles[semantic] = t.createStyle(style)
	}
	return t, nil
}

// SetColorProfile overrides the detected color profile.
func (t *Theme) SetColorProfile(profile termenv.Profile) {
	t.renderer.SetColorProfile(profile)
}

// GetStyle implements StyleProvider. Unknown semantics render unstyled.
func (t *Theme) GetStyle(semantic string) TextStyle {
	if style, ok := t.styles[semantic]; ok {
		return style
	}
	return t.renderer.NewStyle()
}

// IsAvailable implements StyleProvider. A theme is unavailable on writers
// that cannot render any escape sequence.
func (t *Theme) IsAvailable() bool {
	return t.renderer.ColorProfile() != termenv.Ascii
}

// createStyle converts a StyleConfig to a lipgloss.Style.
func (t *Theme) createStyle(config StyleConfig) lipgloss.Style {
	style := t.renderer.NewStyle()

	if color := parseColor(config.Foreground); color != nil {
		style = style.Foreground(color)
	}
	if color := parseColor(config.Background); color != nil {
		style = style.Background(color)
	}

	if config.Bold != nil && *config.Bold {
		style = style.Bold(true)
	}
	if config.Italic != nil && *config.Italic {
		style = style.Italic(true)
	}
	if config.Underline != nil && *config.Underline {
		style = style.Underline(true)
	}
	if config.Strikethrough != nil && *config.Strikethrough {
		style = style.Strikethrough(true)
	}

	return style
}

// parseColor parses a color string or a {light, dark} adaptive color.
func parseColor(value any) lipgloss.TerminalColor {
	switch v := value.(type) {
	case string:
		return lipgloss.Color(v)
	case map[string]any:
		light, hasLight := v["light"].(string)
		dark, hasDark := v["dark"].(string)
		if hasLight && hasDark {
			return lipgloss.AdaptiveColor{Light: light, Dark: dark}
		}
		return nil
	default:
		return nil
	}
}
