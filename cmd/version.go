package cmd

import (
	"fmt"
	"runtime/debug"
)

// BuildVersion is overridden at build time via -ldflags
var BuildVersion = "dev"

// Version prints the build version
func Version() {
	version := BuildVersion
	if version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
			version = info.Main.Version
		}
	}
	fmt.Printf("careersite %s\n", version)
}
