// Package main is the entry point for the devnest CLI.
package main

import (
	"os"

	"github.com/devnesthq/devnest/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
