package main

import (
	"os"

	"github.com/turboindex/turboindex/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
