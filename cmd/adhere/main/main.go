package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/adhere/internal/cli"
	"github.com/arthur-debert/adhere/pkg/style"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error in red when the terminal supports it
		renderer := style.NewRenderer(style.ColorEnabled(true))
		fmt.Fprintln(os.Stderr, renderer.RenderError(err))
		os.Exit(1)
	}
}
