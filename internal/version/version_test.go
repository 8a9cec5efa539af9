package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withBuildInfo(t *testing.T, info *debug.BuildInfo, ok bool) {
	t.Helper()
	original := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, ok }
	t.Cleanup(func() { readBuildInfo = original })
}

func withVersion(t *testing.T, v string) {
	t.Helper()
	original := Version
	Version = v
	t.Cleanup(func() { Version = original })
}

func TestRead(t *testing.T) {
	tests := []struct {
		name     string
		ldflags  string
		info     *debug.BuildInfo
		ok       bool
		expected string
	}{
		{"ldflags wins", "1.4.0", &debug.BuildInfo{Main: debug.Module{Version: "v0.1.0"}}, true, "v1.4.0"},
		{"ldflags already prefixed", "v1.4.0-rc.1", nil, false, "v1.4.0-rc.1"},
		{"ldflags not semver", "nightly", nil, false, "nightly"},
		{"module version", "", &debug.BuildInfo{Main: debug.Module{Version: "v0.3.2"}}, true, "v0.3.2"},
		{"devel build", "", &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true, Dev},
		{"no build info", "", nil, false, Dev},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withVersion(t, tt.ldflags)
			withBuildInfo(t, tt.info, tt.ok)

			assert.Equal(t, tt.expected, Read())
		})
	}
}

func TestString(t *testing.T) {
	withVersion(t, "2.0.0")
	assert.Equal(t, "pushdeploy version v2.0.0", String())
}
