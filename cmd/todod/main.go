// Command todod serves the to-do list HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/todod/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
