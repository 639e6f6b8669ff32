// Package version holds the build-time version string shared by wmbusd
// and wmbusctl, mirroring dantte-lp-gobfd/internal/version.
package version

// Version is overridden at build time via -ldflags.
var Version = "dev"
