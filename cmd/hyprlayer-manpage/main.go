package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/hyprlayer/cmd/hyprlayer"
	"github.com/arthur-debert/hyprlayer/internal/version"
)

func main() {
	rootCmd := hyprlayer.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "HYPRLAYER",
		Section: "1",
		Source:  "hyprlayer " + version.Version,
		Manual:  "hyprlayer manual",
	}

	if err := doc.GenManTree(rootCmd, header, "."); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man pages: %v\n", err)
		os.Exit(1)
	}
}
