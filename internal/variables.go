package internal

import (
	"fmt"
	"runtime"
	"strings"
)

const (

	// Program name, used for logging and the CLI.
	Name = "cruxfile"

	// Placeholder for a variable that was not set at link time.
	defaultUndefined = "(undefined)"

	// Version string reported by builds made outside the release pipeline.
	defaultLocalBuild = "(local)"

	// Branch whose builds carry no stage suffix.
	mainBranch = "main"
)

// Set with -ldflags "-X github.com/cruciblehq/cruxfile/internal.<name>=<value>".
var (
	version   = "" // Release version (e.g., "1.2.3").
	stage     = "" // Git branch the release was cut from.
	gitCommit = "" // Commit hash.

	rawQuiet   = "false" // Default quiet mode.
	rawDebug   = "false" // Default debug mode.
	rawVerbose = "false" // Default verbose mode.
)

// Returns the release version, lower-cased and without a "v" prefix.
func Version() string {
	return orUndefined(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(version)), "v"))
}

// Returns the lower-cased release stage.
func Stage() string {
	return orUndefined(strings.ToLower(strings.TrimSpace(stage)))
}

// Returns the commit hash.
func GitCommit() string {
	return orUndefined(strings.TrimSpace(gitCommit))
}

// Returns the build architecture.
func Arch() string {
	return runtime.GOARCH
}

// Whether the binary was built outside the release pipeline, which sets
// version, stage and commit together.
func IsLocal() bool {
	for _, v := range []string{version, stage, gitCommit} {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

// Returns "<version>[+<stage>] <commit> [<arch>]", or "(local)" for local
// builds. The stage is omitted for main branch releases.
func VersionString() string {
	if IsLocal() {
		return defaultLocalBuild
	}

	suffix := ""
	if s := Stage(); s != mainBranch {
		suffix = "+" + s
	}

	return fmt.Sprintf("%s%s %s [%s]", Version(), suffix, GitCommit(), Arch())
}

func orUndefined(s string) string {
	if s == "" {
		return defaultUndefined
	}
	return s
}
