package main

import (
	_ "embed"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// Version returns the module version when installed with `go install ...@version`,
// otherwise "devel-<VERSION>" with the VCS revision appended when known.
func Version() string {
	info, ok := debug.ReadBuildInfo()
	return versionFrom(strings.TrimSpace(embeddedVersion), info, ok)
}

func versionFrom(base string, info *debug.BuildInfo, ok bool) string {
	if !ok {
		return base
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return "devel-" + base + "+" + s.Value[:7]
		}
	}
	return "devel-" + base
}
