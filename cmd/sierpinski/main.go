package main

import (
	"github.com/voxelsplace/sierpinski/cmd/sierpinski/commands"
	"github.com/voxelsplace/sierpinski/internal/config"
)

func main() {
	if err := commands.Execute(); err != nil {
		config.Exitf("Error: %v", err)
	}
}
