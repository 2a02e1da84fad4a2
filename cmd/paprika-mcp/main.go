// Package main provides the entry point for the paprika-mcp CLI.
package main

import (
	"os"

	"github.com/briantkatch/paprika-mcp/cmd/paprika-mcp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
