package main

import (
	"os"

	"mparcade/cmd/arcade/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
