package main

import (
	"fmt"
	"os"

	"github.com/chess10kp/tuicher/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tuicher: %v\n", err)
		os.Exit(1)
	}
}
