// Package main provides the entry point for the launchindex CLI.
package main

import (
	"os"

	"github.com/Aman-CERP/launchindex/cmd/launchindex/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
