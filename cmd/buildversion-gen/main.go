// Command buildversion-gen writes a build header with version, revision and build time.
package main

import "github.com/oshokin/buildversion/cmd/buildversion-gen/cmd"

func main() {
	cmd.Execute()
}
