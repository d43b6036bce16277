// Package main is the entry point for the docrun CLI.
package main

import "github.com/docrun-dev/docrun/cmd"

func main() {
	cmd.Execute()
}
