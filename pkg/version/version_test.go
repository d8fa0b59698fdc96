package version

import (
	"runtime/debug"
	"testing"
)

func TestInfo(t *testing.T) {
	vcs := &debug.BuildInfo{
		Main: debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "4f2c9e1d0b7a"},
			{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}
	tagged := &debug.BuildInfo{Main: debug.Module{Version: "v0.3.1"}}

	tests := []struct {
		name                string
		version, commit, at string
		bi                  *debug.BuildInfo
		want                string
	}{
		{"bare", "dev", "", "", nil, "dev"},
		{"ldflags", "v0.3.0", "abc1234", "2026-01-01", nil, "v0.3.0 (abc1234) built 2026-01-01"},
		{"vcs", "dev", "", "", vcs, "dev (4f2c9e1-dirty) built 2026-10-01T12:00:00Z"},
		{"ldflags win", "v0.3.0", "abc1234", "2026-01-01", vcs, "v0.3.0 (abc1234-dirty) built 2026-01-01"},
		{"go install", "dev", "", "", tagged, "v0.3.1"},
	}
	for _, tt := range tests {
		if got := info(tt.version, tt.commit, tt.at, tt.bi); got != tt.want {
			t.Errorf("%s: info() = %q, want %q", tt.name, got, tt.want)
		}
	}
}
