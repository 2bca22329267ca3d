package main

import (
	"os"

	"github.com/Raudbjorn/pdq-go/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
