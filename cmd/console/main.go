package main

import (
	"os"

	"alfredoptarigan/pdf2ai/internal/console"
)

func main() {
	if err := console.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
