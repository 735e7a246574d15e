// Command buildversion prints the four-part version derived from a git tag.
package main

import "github.com/oshokin/buildversion/cmd/buildversion/cmd"

func main() {
	cmd.Execute()
}
