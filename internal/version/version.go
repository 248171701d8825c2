// Package version describes the cmdwire build and normalizes the version
// strings applications declare.
package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Set with -ldflags "-X cmdwire/internal/version.GitCommit=...".
var (
	Version   = "0.3.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Unknown is the version of applications that do not declare one.
const Unknown = "UNKNOWN"

// Build is the cmdwire build an application runs on.
type Build struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"gitCommit" yaml:"gitCommit"`
	BuildDate string `json:"buildDate" yaml:"buildDate"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Current returns the running build. It fails when Version was overridden
// with something that is not a semantic version.
func Current() (Build, error) {
	if _, err := semver.NewVersion(Version); err != nil {
		return Build{}, fmt.Errorf("invalid cmdwire version '%s': %w", Version, err)
	}
	return Build{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}, nil
}

func (b Build) String() string {
	return fmt.Sprintf("cmdwire %s (%s, %s)", b.Version, b.GoVersion, b.Platform)
}

// Normalize returns the canonical form of an application version: "v1.2"
// becomes "1.2.0" and an empty version becomes Unknown. Versions semver
// cannot parse are returned with an error.
func Normalize(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" || v == Unknown {
		return Unknown, nil
	}
	sv, err := semver.NewVersion(v)
	if err != nil {
		return "", fmt.Errorf("invalid semantic version '%s': %w", v, err)
	}
	return sv.String(), nil
}

// Format is the --version line of an application: its name and version,
// then the cmdwire commit and build date when they were set at build time.
func Format(name, v string) string {
	line := name + " " + v
	if known(GitCommit) {
		commit := GitCommit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		line += ", commit " + commit
	}
	if known(BuildDate) {
		line += ", built " + BuildDate
	}
	return line
}

func known(value string) bool {
	return value != "" && value != "unknown"
}
