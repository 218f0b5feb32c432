// Package version reports build metadata injected with -ldflags
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// GetVersion returns the injected version. Binaries installed with
// "go install module@version" have no ldflags and report the module version.
func GetVersion() string {
	if Version != "dev" {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}

	return Version
}

// GetFullVersion adds commit, build date and the target platform
func GetFullVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s, %s %s/%s)",
		GetVersion(), Commit, Date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
