// Package main provides the entry point for the candidate evaluation
// engine CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "candidate_engine",
	Short: "Candidate evaluation engine",
	Long:  "Candidate evaluation engine scores candidates against job postings through a hard rejection gate, weighted section scoring, contextual adjustments, and confidence analysis.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
