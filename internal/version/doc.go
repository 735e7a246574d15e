// Package version exposes build metadata of the buildversion tools themselves.
//
// Version, Revision and DateTime are injected at build time via Go ldflags,
// typically with the values printed by `buildversion-gen --format plain`.
package version
