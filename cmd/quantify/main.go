package main

import (
	"os"

	"github.com/quantify701/quantify/cmd/quantify/commands"
)

// main is the entry point for the quantify CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
