package main

import (
	"os"

	"github.com/akramhany/repomind/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
