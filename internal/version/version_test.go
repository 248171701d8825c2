package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBuild(t *testing.T, version, commit, date string) {
	t.Helper()
	original := [3]string{Version, GitCommit, BuildDate}
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = original[0], original[1], original[2]
	})
	Version, GitCommit, BuildDate = version, commit, date
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"empty", "", Unknown, false},
		{"unknown", "UNKNOWN", Unknown, false},
		{"full version", "1.2.3", "1.2.3", false},
		{"v prefix", "v1.2.3", "1.2.3", false},
		{"partial version", "1.2", "1.2.0", false},
		{"prerelease", "2.0.0-beta.1", "2.0.0-beta.1", false},
		{"surrounding spaces", " 1.0.0 ", "1.0.0", false},
		{"not a version", "latest", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		commit   string
		date     string
		expected string
	}{
		{"no build information", "unknown", "unknown", "greeter 1.0.0"},
		{"short commit", "abcdef1234567", "unknown", "greeter 1.0.0, commit abcdef1"},
		{"commit and date", "abc", "2025-06-01", "greeter 1.0.0, commit abc, built 2025-06-01"},
		{"empty values", "", "", "greeter 1.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBuild(t, "0.3.0", tt.commit, tt.date)
			assert.Equal(t, tt.expected, Format("greeter", "1.0.0"))
		})
	}
}

func TestCurrent(t *testing.T) {
	setBuild(t, "0.3.0", "unknown", "unknown")

	build, err := Current()
	require.NoError(t, err)
	assert.Equal(t, "0.3.0", build.Version)
	assert.Equal(t, runtime.Version(), build.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, build.Platform)
	assert.Equal(t, "cmdwire 0.3.0 ("+runtime.Version()+", "+build.Platform+")", build.String())

	Version = "not-semver"
	_, err = Current()
	assert.ErrorContains(t, err, "invalid cmdwire version 'not-semver'")
}
