package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/logiscareer/candidate-engine/internal/ingestion"
	"github.com/logiscareer/candidate-engine/internal/skills"
)

var ingestJobCmd = &cobra.Command{
	Use:   "ingest-job",
	Short: "Ingest a job posting from a URL or HTML file",
	Long:  "Fetch a job posting, extract its text and detectable fields, and print a draft job JSON for review before evaluation.",
	RunE:  runIngestJob,
}

var (
	ingestURL     string
	ingestFile    string
	ingestOutFile string
)

func init() {
	ingestJobCmd.Flags().StringVarP(&ingestURL, "url", "u", "", "URL to fetch the job posting from")
	ingestJobCmd.Flags().StringVarP(&ingestFile, "file", "f", "", "Path to a local HTML or text file")
	ingestJobCmd.Flags().StringVarP(&ingestOutFile, "out", "o", "", "Output file (defaults to stdout)")

	rootCmd.AddCommand(ingestJobCmd)
}

func runIngestJob(cmd *cobra.Command, _ []string) error {
	if ingestURL == "" && ingestFile == "" {
		return fmt.Errorf("either --url or --file must be provided")
	}
	if ingestURL != "" && ingestFile != "" {
		return fmt.Errorf("--url and --file are mutually exclusive; provide only one")
	}

	var html string
	var err error
	if ingestURL != "" {
		html, err = ingestion.FetchHTML(cmd.Context(), ingestURL)
		if err != nil {
			return fmt.Errorf("failed to fetch job posting: %w", err)
		}
	} else {
		html, err = ingestion.ReadFile(ingestFile)
		if err != nil {
			return err
		}
	}

	title, text, err := ingestion.ExtractText(html)
	if err != nil {
		return fmt.Errorf("failed to extract job posting content: %w", err)
	}

	job := ingestion.ExtractJob(skills.NewTaxonomy(), title, text)
	return writeResult(ingestOutFile, job, true)
}
