// Package main is the entry point for the gallifreyan CLI.
package main

import (
	"os"

	"github.com/f3rmion/gallifreyan/cmd/gallifreyan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
