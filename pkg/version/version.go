// Package version exposes the build version string.
package version

// Version is the current turboindex release.
const Version = "0.2.0"
