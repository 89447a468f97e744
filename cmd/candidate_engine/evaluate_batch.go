package main

import (
	"fmt"
	"runtime"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/logiscareer/candidate-engine/internal/engine"
	"github.com/logiscareer/candidate-engine/internal/types"
)

var evaluateBatchCmd = &cobra.Command{
	Use:   "evaluate-batch",
	Short: "Evaluate many candidates against one job",
	Long:  "Evaluate every candidate in a JSON array file against a job, in parallel, and print results sorted by input order.",
	RunE:  runEvaluateBatch,
}

var (
	batchJobFile        string
	batchCandidatesFile string
	batchOutFile        string
	batchWorkers        int
)

func init() {
	evaluateBatchCmd.Flags().StringVarP(&batchJobFile, "job", "j", "", "Path to job JSON file (required)")
	evaluateBatchCmd.Flags().StringVarP(&batchCandidatesFile, "candidates", "c", "", "Path to JSON array of candidates (required)")
	evaluateBatchCmd.Flags().StringVarP(&batchOutFile, "out", "o", "", "Output file (defaults to stdout)")
	evaluateBatchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "Concurrent evaluations (0 = number of CPUs)")

	evaluateBatchCmd.MarkFlagRequired("job")
	evaluateBatchCmd.MarkFlagRequired("candidates")

	rootCmd.AddCommand(evaluateBatchCmd)
}

func runEvaluateBatch(cmd *cobra.Command, _ []string) error {
	var job types.Job
	if err := readJSON(batchJobFile, &job); err != nil {
		return err
	}
	var candidates []types.Candidate
	if err := readJSON(batchCandidatesFile, &candidates); err != nil {
		return err
	}
	if len(candidates) == 0 {
		return fmt.Errorf("candidates file contains no candidates")
	}

	validate := validator.New()
	if err := validate.Struct(&job); err != nil {
		return fmt.Errorf("job validation failed: %w", err)
	}
	for i := range candidates {
		if err := validate.Struct(&candidates[i]); err != nil {
			return fmt.Errorf("candidate %d validation failed: %w", i, err)
		}
	}

	workers := batchWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	evaluator := engine.New(newProvider(cmd.Context()))

	// Evaluations are independent, so they fan out across a bounded group.
	results := make([]*types.EvaluationResult, len(candidates))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(workers)
	for i := range candidates {
		g.Go(func() error {
			result, err := evaluator.Evaluate(ctx, &job, &candidates[i])
			if err != nil {
				return fmt.Errorf("candidate %s: %w", candidates[i].CandidateID, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return writeResult(batchOutFile, results, true)
}
