package main

import (
	"fmt"
	"os"

	"github.com/GoCodeAlone/mosaic/cmd/mosaic/cmd"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
