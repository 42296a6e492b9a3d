// Package version reports the build version of css-composer.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	// Version information, set at build time via ldflags
	Version   = "dev"     // Version string (e.g., "v0.3.0")
	GitCommit = "unknown" // Git commit hash
	GitTag    = "unknown" // Git tag
	BuildTime = "unknown" // Build timestamp
	GitDirty  = ""        // "dirty" if working directory has uncommitted changes
)

// readBuildInfo is replaced in tests
var readBuildInfo = debug.ReadBuildInfo

// Info describes a build
type Info struct {
	Version   string
	Commit    string
	BuildTime string
	Dirty     bool
	GoVersion string
}

// Get collects build information: ldflags first, then the module and VCS
// data the Go toolchain embeds
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    GitCommit,
		BuildTime: BuildTime,
		Dirty:     GitDirty == "dirty",
		GoVersion: runtime.Version(),
	}

	build, ok := readBuildInfo()
	if !ok {
		if info.Version == "dev" {
			info.Version = fromGit(GitTag, GitCommit, info.Dirty)
		}
		return info
	}

	for _, s := range build.Settings {
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
			if GitDirty == "" {
				info.Dirty = s.Value == "true"
			}
		}
	}

	if info.Version == "dev" {
		if v := build.Main.Version; v != "(devel)" && v != "" {
			info.Version = v
		} else {
			info.Version = fromGit(GitTag, info.Commit, info.Dirty)
		}
	}
	return info
}

// fromGit builds a version like v1.2.3-abc1234[-dirty] from a tag and
// commit; without a tag it is "dev"
func fromGit(tag, commit string, dirty bool) string {
	if tag == "unknown" || tag == "" || commit == "unknown" {
		return "dev"
	}
	version := tag
	short := ShortCommit(commit)
	if short != "" && !strings.HasSuffix(tag, short) {
		version = fmt.Sprintf("%s-%s", tag, short)
	}
	if dirty {
		version += "-dirty"
	}
	return version
}

// ShortCommit abbreviates a commit hash to seven characters
func ShortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}

// String formats the info for --version output
func (i Info) String() string {
	var b strings.Builder
	b.WriteString(i.Version)
	b.WriteString(" (")
	b.WriteString(i.GoVersion)
	if i.Commit != "unknown" && i.Commit != "" {
		b.WriteString(", commit ")
		b.WriteString(ShortCommit(i.Commit))
		if i.Dirty {
			b.WriteString(", dirty")
		}
	}
	b.WriteByte(')')
	return b.String()
}
