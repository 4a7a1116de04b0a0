// Package main is the entry point for the helix CLI.
package main

import "helix.dev/pkg/helix/cmd"

func main() {
	cmd.Execute()
}
