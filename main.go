// Package main is the entry point for the duelmatrix CLI tool, which stores
// tournament duel records and renders team-vs-team duel matrices.
package main

import "github.com/pable/go-duel-matrix/cmd"

func main() {
	cmd.Execute()
}
