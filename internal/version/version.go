// Package version carries the build version, overridable with
// -ldflags "-X ab1align/internal/version.Version=...".
package version

var Version = "0.3.0-dev"
