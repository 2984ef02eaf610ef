package build

import "fmt"

// Semantic version components, overridable at link time.
const (
	appMajor = 0
	appMinor = 3
	appPatch = 0
)

// Commit is the git commit hash, set via -ldflags at build time.
var Commit string

// Version returns the semantic version string.
func Version() string {
	return fmt.Sprintf("%d.%d.%d", appMajor, appMinor, appPatch)
}
