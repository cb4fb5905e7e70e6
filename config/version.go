package config

import (
	"runtime/debug"
	"strings"
)

// version is stamped with -ldflags "-X github.com/milk9111/trafficgrid/config.version=v1.2.3".
var version string

const fallbackVersion = "v0.0.0"

// Version returns the semantic version of the running binary.
func Version() string {
	if v := normalizeVersion(version); v != "" {
		return v
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := normalizeVersion(info.Main.Version); v != "" {
			return v
		}
	}
	return fallbackVersion
}

func normalizeVersion(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || v == "(devel)" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
