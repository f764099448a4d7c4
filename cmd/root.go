// Package cmd implements the CLI commands for brochurepipe using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "brochurepipe",
	Short: "brochurepipe — turn a company website into a marketing brochure",
	Long: `brochurepipe fetches a company's landing page, asks a language model which
of its links matter for a brochure, fetches those too, and asks the model
to write the brochure from the combined content.

Usage:
  brochurepipe generate <url> [flags]`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
