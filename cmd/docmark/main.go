package main

import (
	"os"

	"github.com/tsawler/docmark/cmd/docmark/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
