package main

import (
	"os"

	"better-naming/cmd/cli"
)

func main() {
	// With no arguments, show the command palette.
	// Otherwise, run the CLI (which will handle the arguments).
	if len(os.Args) <= 1 {
		cli.RunPalette()
	} else {
		cli.RunCLI()
	}
}
