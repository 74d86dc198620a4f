package main

import (
	"os"

	"github.com/vagabr/vaga-responder/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
