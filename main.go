package main

import (
	"os"

	"github.com/hjjung-katech/youtube-transcriber/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
