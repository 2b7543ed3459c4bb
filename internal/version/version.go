// Package version reports the build version, from linker flags or the
// module build info.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time with -ldflags "-X bennypowers.dev/utilgen/internal/version.Version=v1.0.0".
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
	GitDirty  = ""
)

// Info is a version report.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	Dirty     bool   `json:"dirty,omitempty"`
}

// Get returns the version, preferring linker flags, then the main module
// version, then the VCS revision stamped by the go command.
func Get() Info {
	info := Info{Version: Version, Commit: GitCommit, BuildTime: BuildTime, Dirty: GitDirty == "dirty"}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "unknown" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildTime == "unknown" {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			info.Dirty = info.Dirty || s.Value == "true"
		}
	}
	return info
}

// String is the version with a short commit, like "v1.2.0 (abc1234, dirty)".
func (i Info) String() string {
	if i.Commit == "unknown" || i.Commit == "" {
		return i.Version
	}
	commit := i.Commit[:min(len(i.Commit), 7)]
	if i.Dirty {
		return fmt.Sprintf("%s (%s, dirty)", i.Version, commit)
	}
	return fmt.Sprintf("%s (%s)", i.Version, commit)
}
