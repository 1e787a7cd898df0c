package main

import (
	"fmt"
	"os"

	"emoji-panel/cmd"
)

func main() {
	cmd.SetStaticFS(staticFiles)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
