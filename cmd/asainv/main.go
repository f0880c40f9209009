package main

import (
	"os"

	"github.com/cory-johannsen/asainv/cmd/asainv/commands"
)

func main() {
	// Errors are printed by the commands package.
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
