// Package render turns build header records into source files and
// machine-readable documents.
package render
