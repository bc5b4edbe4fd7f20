// Package version reports the version of the dutree binary.
//
// Release builds inject Version, Commit and Date at link time:
//
//	go build -ldflags "-X github.com/dendrascience/dutree/version.Version=v1.0.0 -X github.com/dendrascience/dutree/version.Commit=abc1234"
//
// Development builds fall back to the build information the Go toolchain
// embeds in every binary (module version, vcs.revision and vcs.time).
package version
