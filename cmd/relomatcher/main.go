// Package main provides the entry point for the relocation matcher.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "relomatcher",
	Short: "Relocation destination matcher",
	Long:  "Relomatcher ranks relocation destinations against a questionnaire profile using a deterministic scoring engine with an optional model-backed advisory pass.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
