package main

import (
	"fmt"
	"os"

	"github.com/bharm16/prompt-builder-sub009/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "spanmark: %v\n", err)
		os.Exit(1)
	}
}
