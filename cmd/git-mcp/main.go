// Package main is the entry point for the git-mcp server binary.
package main

import (
	"os"

	"github.com/KonstantinKhan/git-mcp/cmd/git-mcp/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
