// Package version reports build information for themeregistry.
// Values are injected at link time, for example:
//
//	go build -ldflags "-X github.com/jmylchreest/themeregistry/internal/version.Version=1.2.0"
package version

import (
	"fmt"
	"runtime"
)

// Link-time variables.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info is the build description printed by `themeregistry version`.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Date      string `json:"date" yaml:"date"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Get returns the build information of the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders Info on one line. The commit is shortened and omitted
// entirely for local builds.
func String() string {
	info := Get()
	if info.Commit == "unknown" || info.Date == "unknown" {
		return fmt.Sprintf("themeregistry version %s (%s, %s)", info.Version, info.GoVersion, info.Platform)
	}

	commit := info.Commit
	if len(commit) > 8 {
		commit = commit[:8]
	}
	return fmt.Sprintf("themeregistry version %s (commit: %s, built: %s, %s, %s)",
		info.Version, commit, info.Date, info.GoVersion, info.Platform)
}

// Short returns just the version.
func Short() string {
	return Version
}

// UserAgent returns the User-Agent value sent with outbound requests.
func UserAgent() string {
	return "themeregistry/" + Version
}
