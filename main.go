package main

import (
	"os"

	"github.com/benoitkugler/svgstyler/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
