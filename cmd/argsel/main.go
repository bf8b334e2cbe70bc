// argsel reports calls whose arguments appear to be passed in the wrong
// order, in Go packages and Java sources.
package main

import (
	"os"

	"github.com/corey/argsel/cmd/argsel/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if code := cmd.ExitCode(err); code >= 0 {
			os.Exit(code)
		}
		os.Exit(1)
	}
}
