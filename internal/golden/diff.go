package golden

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff returns a readable comparison of expected and actual: both outputs
// with line numbers followed by the character level differences.
func Diff(expected, actual string) string {
	if expected == actual {
		return ""
	}

	var b strings.Builder
	b.WriteString("--- Expected ---\n")
	writeNumberedLines(&b, expected)
	b.WriteString("\n--- Actual ---\n")
	writeNumberedLines(&b, actual)
	b.WriteString("\n--- Diff ---\n")

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(expected, actual, false))
	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			fmt.Fprintf(&b, "- %q\n", diff.Text)
		case diffmatchpatch.DiffInsert:
			fmt.Fprintf(&b, "+ %q\n", diff.Text)
		case diffmatchpatch.DiffEqual:
			// Long unchanged runs are shortened.
			if len(diff.Text) > 50 {
				fmt.Fprintf(&b, "  %q...\n", diff.Text[:47])
			} else {
				fmt.Fprintf(&b, "  %q\n", diff.Text)
			}
		}
	}
	return b.String()
}

func writeNumberedLines(b *strings.Builder, content string) {
	for i, line := range strings.Split(content, "\n") {
		fmt.Fprintf(b, "%4d| %s\n", i+1, line)
	}
}
