// Package buildinfo exposes build metadata injected at link time.
package buildinfo

// Set via -ldflags at build time, e.g.:
//
//	go build -ldflags "-X github.com/netintel/netintel/pkg/buildinfo.Version=v0.3.0"
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
