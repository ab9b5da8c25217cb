// Package version reports which build of the habits binary is running.
package version

import "fmt"

// Stamped by the release build:
//
//	go build -ldflags "-X github.com/example/habits/internal/version.Commit=$(git rev-parse HEAD) \
//	  -X github.com/example/habits/internal/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/habits
var (
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String is shown by `habits version` and `habits --version`.
func String() string {
	return fmt.Sprintf("habits dev (commit: %s, built: %s)", shortCommit(), BuildTime)
}

// shortCommit abbreviates a full hash to seven characters.
func shortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}
