// Package generator collects the tag, revision and build timestamp, and writes
// them as a build header (C++ declarations, a Go const block, or a document).
//
// The header is rendered in memory first: a malformed tag leaves an existing
// output file untouched, and an unchanged header is not rewritten.
package generator
