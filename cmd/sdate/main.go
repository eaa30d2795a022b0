// Package main is the entry point for the sdate CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/sitedates/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
