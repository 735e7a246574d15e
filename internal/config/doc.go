// Package config defines the settings shared by the buildversion binaries and
// provides helpers to load, validate and save them in YAML format.
//
// The Config type names the commands used to look up the tag, the revision
// and the build timestamp, plus output defaults for the generator. A missing
// default settings file is not an error: the built-in defaults match
// `git describe --tags` and `git rev-parse HEAD`.
package config
