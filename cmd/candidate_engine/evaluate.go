package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/logiscareer/candidate-engine/internal/config"
	"github.com/logiscareer/candidate-engine/internal/embedding"
	"github.com/logiscareer/candidate-engine/internal/engine"
	"github.com/logiscareer/candidate-engine/internal/observability"
	"github.com/logiscareer/candidate-engine/internal/schemas"
	"github.com/logiscareer/candidate-engine/internal/types"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a candidate against a job",
	Long:  "Evaluate a candidate JSON file against a job JSON file and print the full evaluation result.",
	RunE:  runEvaluate,
}

var (
	evalJobFile       string
	evalCandidateFile string
	evalConfigFile    string
	evalOutFile       string
	evalPretty        bool
	evalVerbose       bool
)

func init() {
	evaluateCmd.Flags().StringVarP(&evalJobFile, "job", "j", "", "Path to job JSON file")
	evaluateCmd.Flags().StringVarP(&evalCandidateFile, "candidate", "c", "", "Path to candidate JSON file")
	evaluateCmd.Flags().StringVar(&evalConfigFile, "config", "", "Path to JSON config file supplying defaults for flags")
	evaluateCmd.Flags().StringVarP(&evalOutFile, "out", "o", "", "Output file (defaults to stdout)")
	evaluateCmd.Flags().BoolVar(&evalPretty, "pretty", true, "Pretty-print JSON output")
	evaluateCmd.Flags().BoolVarP(&evalVerbose, "verbose", "v", false, "Print a human-readable summary to stderr")

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	if evalConfigFile != "" {
		fileCfg, err := config.LoadConfig(evalConfigFile)
		if err != nil {
			return err
		}
		if err := fileCfg.Validate(); err != nil {
			return err
		}
		merged := (&config.Config{Job: evalJobFile, Candidate: evalCandidateFile}).MergeWithDefaults(*fileCfg)
		evalJobFile = merged.Job
		evalCandidateFile = merged.Candidate
	}
	if evalJobFile == "" || evalCandidateFile == "" {
		return fmt.Errorf("--job and --candidate are required (via flags or --config)")
	}

	job, candidate, err := loadPair(evalJobFile, evalCandidateFile)
	if err != nil {
		return err
	}

	provider := newProvider(cmd.Context())
	evaluator := engine.New(provider)

	result, err := evaluator.Evaluate(cmd.Context(), job, candidate)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	if evalVerbose {
		observability.NewPrinter(os.Stderr).PrintEvaluation(result)
	}

	return writeResult(evalOutFile, result, evalPretty)
}

// loadPair loads and validates the job and candidate input files, applying
// JSON Schema validation first and struct tag validation second.
func loadPair(jobPath, candidatePath string) (*types.Job, *types.Candidate, error) {
	if schemaPath := schemas.ResolveSchemaPath("schemas/job.schema.json"); schemaPath != "" {
		if err := schemas.ValidateFile(schemaPath, jobPath); err != nil {
			return nil, nil, fmt.Errorf("job input invalid: %w", err)
		}
	}
	if schemaPath := schemas.ResolveSchemaPath("schemas/candidate.schema.json"); schemaPath != "" {
		if err := schemas.ValidateFile(schemaPath, candidatePath); err != nil {
			return nil, nil, fmt.Errorf("candidate input invalid: %w", err)
		}
	}

	var job types.Job
	if err := readJSON(jobPath, &job); err != nil {
		return nil, nil, err
	}
	var candidate types.Candidate
	if err := readJSON(candidatePath, &candidate); err != nil {
		return nil, nil, err
	}

	validate := validator.New()
	if err := validate.Struct(&job); err != nil {
		return nil, nil, fmt.Errorf("job validation failed: %w", err)
	}
	if err := validate.Struct(&candidate); err != nil {
		return nil, nil, fmt.Errorf("candidate validation failed: %w", err)
	}

	return &job, &candidate, nil
}

// newProvider creates the embedding provider, degrading to the hash
// fallback when GEMINI_API_KEY is unset or the client cannot be created.
func newProvider(ctx context.Context) *embedding.ResilientProvider {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return embedding.NewResilientProvider(nil)
	}

	gemini, err := embedding.NewGeminiProvider(ctx, apiKey, os.Getenv("EMBEDDING_MODEL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: embedding provider unavailable, using fallback: %v\n", err)
		return embedding.NewResilientProvider(nil)
	}
	return embedding.NewResilientProvider(gemini)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func writeResult(path string, v any, pretty bool) error {
	var data []byte
	var err error
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
