package version

import (
	"runtime/debug"
	"strings"
)

// Release builds stamp these with -ldflags "-X
// github.com/newtron-network/fabricgen/pkg/version.Version=v0.3.0 ...".
// Anything left unset is taken from the build info go install records.
var (
	Version   = "dev"
	GitCommit = ""
	BuildDate = ""
)

// Info returns the version line printed by "fabricgen version".
func Info() string {
	bi, _ := debug.ReadBuildInfo()
	return info(Version, GitCommit, BuildDate, bi)
}

func info(v, commit, date string, bi *debug.BuildInfo) string {
	dirty := false
	if bi != nil {
		if v == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			v = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if commit == "" {
					commit = s.Value
				}
			case "vcs.time":
				if date == "" {
					date = s.Value
				}
			case "vcs.modified":
				dirty = s.Value == "true"
			}
		}
	}

	var b strings.Builder
	b.WriteString(v)
	if commit != "" {
		b.WriteString(" (" + commit[:min(len(commit), 7)])
		if dirty {
			b.WriteString("-dirty")
		}
		b.WriteString(")")
	}
	if date != "" {
		b.WriteString(" built " + date)
	}
	return b.String()
}
