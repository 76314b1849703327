// Package gbifreport collects annual statistics about preserved specimens
// and literature citations of publishing organizations registered in GBIF.
package gbifreport

var (
	// Version of the app. It is set during the build.
	Version = "v0.1.0"
	// Build timestamp, set during the build.
	Build = "n/a"
)
