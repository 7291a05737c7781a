package main

import (
	"os"

	"github.com/abhisek/rosary/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
