// Command javactl is a standalone CLI front-end over the javart library:
// detect, catalog, install, resume, and config subcommands for operators
// and CI scripts that do not embed javart directly.
package main

import (
	"fmt"
	"os"

	"github.com/kestrelforge/javart/cmd/javactl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
