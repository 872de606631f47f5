package lyricsync

import (
	"runtime"
	"runtime/debug"
)

// Version is the release of this module. Binaries installed with
// "go install ...@vX.Y.Z" report the installed module version instead.
const Version = "0.3.0"

// BuildInfo describes the binary that is running.
type BuildInfo struct {
	Version   string
	Revision  string // VCS commit, "unknown" outside a checkout
	Time      string // commit time in RFC 3339
	Modified  bool   // the working tree had local changes
	GoVersion string
}

// ReadBuildInfo reports version details stamped into the binary by the Go
// toolchain. Fields the toolchain did not record are "unknown".
func ReadBuildInfo() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		Revision:  "unknown",
		Time:      "unknown",
		GoVersion: runtime.Version(),
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" && bi.Main.Path == modulePath {
		info.Version = v
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
		case "vcs.time":
			info.Time = s.Value
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

const modulePath = "github.com/simonhull/lyricsync"
