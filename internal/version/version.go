package version

import (
	"fmt"
	"runtime/debug"
)

// These variables are set at build time via ldflags
var (
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns the version string (commit-hash based, no semver).
// Without ldflags the VCS stamp embedded by the Go toolchain is used.
func String() string {
	commit, built := Commit, BuildTime
	if commit == "unknown" {
		if rev, at, ok := vcsStamp(); ok {
			commit, built = rev, at
		}
	}
	return fmt.Sprintf("alunos dev (commit: %s, built: %s)", shortCommit(commit), built)
}

func shortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}

func vcsStamp() (revision, at string, ok bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", "", false
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.time":
			at = s.Value
		}
	}
	if revision == "" {
		return "", "", false
	}
	if at == "" {
		at = "unknown"
	}
	return revision, at, true
}
