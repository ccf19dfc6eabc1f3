// Package main is the entry point for the redbook binary.
package main

import (
	"os"

	"acs-redbook/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
