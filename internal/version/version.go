package version

import "runtime/debug"

// Version is set at build time with
// -ldflags "-X github.com/0xa1bed0/deskutils/internal/version.Version=v1.2.3".
var Version = ""

// Get returns the build version, falling back to the module version recorded
// by the go tool and finally to "dev".
func Get() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}
