// Command owsinfo loads a process description parser module, parses one
// document and prints a summary of the result.
package main

import (
	"fmt"
	"os"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := NewRootCommand(version, commit).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
