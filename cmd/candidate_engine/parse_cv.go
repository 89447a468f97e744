package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/logiscareer/candidate-engine/internal/cvparse"
	"github.com/logiscareer/candidate-engine/internal/llm"
	"github.com/logiscareer/candidate-engine/internal/skills"
)

var parseCVCmd = &cobra.Command{
	Use:   "parse-cv",
	Short: "Parse a CV text file into a candidate profile",
	Long:  "Extract a structured candidate profile from raw CV text, optionally refined with the Gemini API, and print it as JSON ready for evaluation.",
	RunE:  runParseCV,
}

var (
	cvFile    string
	cvOutFile string
	cvRefine  bool
)

func init() {
	parseCVCmd.Flags().StringVarP(&cvFile, "cv", "f", "", "Path to CV text file (required)")
	parseCVCmd.Flags().StringVarP(&cvOutFile, "out", "o", "", "Output file (defaults to stdout)")
	parseCVCmd.Flags().BoolVar(&cvRefine, "refine", false, "Refine extraction with the Gemini API (requires GEMINI_API_KEY)")

	parseCVCmd.MarkFlagRequired("cv")

	rootCmd.AddCommand(parseCVCmd)
}

func runParseCV(cmd *cobra.Command, _ []string) error {
	text, err := os.ReadFile(cvFile)
	if err != nil {
		return fmt.Errorf("failed to read CV file: %w", err)
	}

	parser := cvparse.NewParser(skills.NewTaxonomy())
	extracted := parser.Parse(string(text))

	if cvRefine {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return fmt.Errorf("--refine requires the GEMINI_API_KEY environment variable")
		}
		client, err := llm.NewGeminiClient(cmd.Context(), apiKey, "")
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer client.Close()

		if err := cvparse.Refine(cmd.Context(), client, extracted); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: refinement failed, using heuristic parse: %v\n", err)
		}
	}

	return writeResult(cvOutFile, cvparse.MapToCandidate(extracted), true)
}
