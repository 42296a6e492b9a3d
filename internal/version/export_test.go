package version

import "runtime/debug"

// SetBuildInfo replaces the embedded build info until the returned func is called
func SetBuildInfo(info *debug.BuildInfo) func() {
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return info, info != nil
	}
	return func() { readBuildInfo = orig }
}
