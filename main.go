package main

import (
	"os"

	"q.log/tabsimplex/cli"
	"q.log/tabsimplex/instance"
	"q.log/tabsimplex/instance/mps"
)

// set during build
var version = "dev"

func main() {
	// MPS files go through GLPK, which only the binary links against.
	if err := cli.Execute(
		cli.WithVersion(version),
		cli.WithReader(instance.MPS, mps.ReadFile),
	); err != nil {
		os.Exit(1)
	}
}
