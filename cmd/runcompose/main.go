// Package main provides the entry point for the runcompose CLI.
package main

import (
	"os"

	"github.com/griffithind/runcompose/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
