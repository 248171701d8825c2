package golden

import (
	"regexp"
	"strings"
)

// Pattern replaces every match of Pattern with "<Name>".
type Pattern struct {
	Name    string
	Pattern *regexp.Regexp
}

// Normalizer replaces machine and build specific content with placeholders
// so that outputs recorded on one machine match on another.
type Normalizer struct {
	patterns []Pattern
}

// NewNormalizer creates a normalizer with the built-in patterns followed by
// extra.
func NewNormalizer(extra ...Pattern) *Normalizer {
	n := &Normalizer{}
	n.patterns = append(n.patterns,
		Pattern{Name: "uuid", Pattern: regexp.MustCompile(`\b[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\b`)},
		Pattern{Name: "memory_address", Pattern: regexp.MustCompile(`0x[a-fA-F0-9]{8,16}`)},
		Pattern{Name: "go_version", Pattern: regexp.MustCompile(`\bgo1(\.\d+){1,2}(rc\d+|beta\d+)?`)},
		Pattern{Name: "platform", Pattern: regexp.MustCompile(`\b(linux|darwin|windows|freebsd|openbsd|netbsd)/[a-z0-9]+\b`)},
	)
	n.patterns = append(n.patterns, extra...)
	return n
}

// Normalize cleans output and replaces every pattern match with its
// placeholder.
func (n *Normalizer) Normalize(output string) string {
	normalized := Clean(output)
	for _, p := range n.patterns {
		normalized = p.Pattern.ReplaceAllString(normalized, "<"+p.Name+">")
	}
	return normalized
}

// Match reports whether actual matches expected once both are normalized.
// Expected outputs may already contain placeholders.
func (n *Normalizer) Match(expected, actual string) bool {
	return n.Normalize(expected) == n.Normalize(actual)
}

// IsPlaceholderLine reports whether line holds a placeholder.
func IsPlaceholderLine(line string) bool {
	return strings.Contains(line, "<") && strings.Contains(line, ">")
}
