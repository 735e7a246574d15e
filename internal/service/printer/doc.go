// Package printer reads a version tag and prints the derived four-part
// version, e.g. "v2.5-13" becomes "2.5.0.13".
package printer
