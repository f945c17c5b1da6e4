package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/hyprlayer/cmd/hyprlayer"
)

func main() {
	rootCmd := hyprlayer.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, hyprlayer.ErrorLine(err))
		os.Exit(1)
	}
}
