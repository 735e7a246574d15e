// Package buildversion contains the core version derivation rules.
//
// It parses tags of the form v<major>.<minor>[-<build>] into a four-part
// Version (major.minor.0.build) and assembles the Info records embedded into
// a generated build header. The package never talks to git or the clock:
// callers hand it plain strings.
package buildversion
