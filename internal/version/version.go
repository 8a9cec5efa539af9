// Package version reports the pushdeploy version from the build manifest.
package version

import (
	"runtime/debug"

	"golang.org/x/mod/semver"
)

// Version is set at build time via
// -ldflags "-X github.com/penwyp/pushdeploy/internal/version.Version=v1.2.3".
var Version = ""

// Dev is reported when neither ldflags nor module information carry a version.
const Dev = "dev"

var readBuildInfo = debug.ReadBuildInfo

// Read returns the ldflags version if set, else the main module version
// recorded by `go install`, else Dev.
func Read() string {
	if Version != "" {
		return canonical(Version)
	}
	if info, ok := readBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return canonical(info.Main.Version)
	}
	return Dev
}

// canonical adds the "v" prefix semver expects and returns the input
// unchanged when it is not a semantic version.
func canonical(v string) string {
	candidate := v
	if candidate[0] != 'v' {
		candidate = "v" + candidate
	}
	if semver.IsValid(candidate) {
		return candidate
	}
	return v
}

// String formats the --version output.
func String() string {
	return "pushdeploy version " + Read()
}
