package version_test

import (
	"runtime/debug"
	"testing"

	"bennypowers.dev/csscomposer/internal/version"
	"github.com/stretchr/testify/assert"
)

func withLdflags(t *testing.T, ver, commit, tag, dirty string) {
	t.Helper()
	origVersion, origCommit, origTag, origDirty := version.Version, version.GitCommit, version.GitTag, version.GitDirty
	t.Cleanup(func() {
		version.Version, version.GitCommit, version.GitTag, version.GitDirty = origVersion, origCommit, origTag, origDirty
	})
	version.Version, version.GitCommit, version.GitTag, version.GitDirty = ver, commit, tag, dirty
}

func TestGet(t *testing.T) {
	vcs := &debug.BuildInfo{
		Main: debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	tests := []struct {
		name        string
		ver         string
		commit      string
		tag         string
		dirty       string
		build       *debug.BuildInfo
		wantVersion string
		wantCommit  string
		wantDirty   bool
	}{
		{"defaults", "dev", "unknown", "unknown", "", nil, "dev", "unknown", false},
		{"ldflags", "v1.2.3", "abc", "unknown", "", nil, "v1.2.3", "abc", false},
		{"git tag and commit", "dev", "abc1234567", "v1.2.3", "", nil, "v1.2.3-abc1234", "abc1234567", false},
		{"tag already has commit", "dev", "abc1234567", "v1.2.3-abc1234", "dirty", nil, "v1.2.3-abc1234-dirty", "abc1234567", true},
		{"module version", "dev", "unknown", "unknown", "", &debug.BuildInfo{Main: debug.Module{Version: "v0.4.0"}}, "v0.4.0", "unknown", false},
		{"vcs settings", "dev", "unknown", "v2.0.0", "", vcs, "v2.0.0-0123456-dirty", "0123456789abcdef", true},
		{"ldflags win over vcs", "dev", "feedface", "unknown", "", vcs, "dev", "feedface", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withLdflags(t, tt.ver, tt.commit, tt.tag, tt.dirty)
			t.Cleanup(version.SetBuildInfo(tt.build))

			info := version.Get()
			assert.Equal(t, tt.wantVersion, info.Version)
			assert.Equal(t, tt.wantCommit, info.Commit)
			assert.Equal(t, tt.wantDirty, info.Dirty)
		})
	}
}

func TestInfoString(t *testing.T) {
	assert.Equal(t, "v1.0.0 (go1.25.5, commit 0123456, dirty)", version.Info{
		Version:   "v1.0.0",
		Commit:    "0123456789",
		Dirty:     true,
		GoVersion: "go1.25.5",
	}.String())
	assert.Equal(t, "dev (go1.25.5)", version.Info{Version: "dev", Commit: "unknown", GoVersion: "go1.25.5"}.String())
}

func TestShortCommit(t *testing.T) {
	assert.Equal(t, "abc", version.ShortCommit("abc"))
	assert.Equal(t, "0123456", version.ShortCommit("0123456789"))
}
