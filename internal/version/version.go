package version

import (
	"fmt"
	"runtime/debug"
)

// Set via ldflags, e.g. -X github.com/noot-app/fetch-servings/internal/version.tag=v1.2.0
var (
	tag       = "dev"
	commit    = "123abc"
	buildTime = "now"
)

const releaseURL = "https://github.com/noot-app/fetch-servings/releases/tag/"

// buildInfoReader is a function type that can be mocked in tests
var buildInfoReader = debug.ReadBuildInfo

// Info describes the running build
type Info struct {
	Tag       string
	Commit    string
	BuildTime string
}

// Get resolves the build info. ldflags values win; otherwise the module
// version and VCS stamps embedded by the go tool are used.
func Get() Info {
	info := Info{Tag: tag, Commit: commit, BuildTime: buildTime}

	bi, ok := buildInfoReader()
	if !ok || bi == nil {
		return info
	}

	if tag == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Tag = bi.Main.Version
	}
	for _, setting := range bi.Settings {
		switch {
		case setting.Key == "vcs.revision" && commit == "123abc":
			info.Commit = setting.Value
		case setting.Key == "vcs.time" && buildTime == "now":
			info.BuildTime = setting.Value
		}
	}

	return info
}

// Short returns just the tag
func Short() string {
	return Get().Tag
}

// String returns the full version text printed by --version
func String() string {
	info := Get()
	return fmt.Sprintf("%s (%s) built at %s\n%s%s", info.Tag, info.Commit, info.BuildTime, releaseURL, info.Tag)
}
