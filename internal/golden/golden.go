// Package golden provides golden file testing for command output.
//
// A case is a "<name>.cmd" file holding one command line per line and a
// "<name>.expected" file holding the output those lines produce. Blank lines
// and lines starting with '#' in a .cmd file are ignored.
package golden

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	commandExt  = ".cmd"
	expectedExt = ".expected"
)

// Case is one golden test case.
type Case struct {
	Name     string
	Lines    []string
	Expected string
	// Recorded is false when the case has no .expected file yet.
	Recorded bool

	dir string
}

// ExpectedPath returns the path of the expectation file.
func (c Case) ExpectedPath() string {
	return filepath.Join(c.dir, c.Name+expectedExt)
}

// Load reads every case of dir, sorted by name.
func Load(dir string) ([]Case, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+commandExt))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	cases := make([]Case, 0, len(matches))
	for _, path := range matches {
		c, err := loadCase(dir, strings.TrimSuffix(filepath.Base(path), commandExt))
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, nil
}

func loadCase(dir, name string) (Case, error) {
	c := Case{Name: name, dir: dir}

	file, err := os.Open(filepath.Join(dir, name+commandExt))
	if err != nil {
		return c, fmt.Errorf("failed to open script: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		c.Lines = append(c.Lines, line)
	}
	if err := scanner.Err(); err != nil {
		return c, fmt.Errorf("failed to read script %s: %w", name, err)
	}

	expected, err := os.ReadFile(c.ExpectedPath())
	switch {
	case os.IsNotExist(err):
		return c, nil
	case err != nil:
		return c, fmt.Errorf("failed to read expected file %s: %w", c.ExpectedPath(), err)
	}
	c.Expected = Clean(string(expected))
	c.Recorded = true
	return c, nil
}

// Record writes output as the expectation of c.
func Record(c Case, output string) error {
	if err := os.WriteFile(c.ExpectedPath(), []byte(Clean(output)+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write expected file: %w", err)
	}
	return nil
}

// Clean normalizes line endings and drops trailing newlines. Trailing spaces
// within lines are kept.
func Clean(output string) string {
	output = strings.ReplaceAll(output, "\r\n", "\n")
	return strings.TrimRight(output, "\n")
}
