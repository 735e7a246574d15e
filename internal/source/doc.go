// Package source provides the string providers that feed the version parser:
// fixed values, the first line of a reader, the output of a lookup command
// and the local clock.
package source
