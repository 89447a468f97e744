package scoring

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/logiscareer/candidate-engine/internal/embedding"
)

// ScoreSemantic encodes the job text (plus the optional extended candidate
// profile text) and the candidate text via the shared embedding provider,
// then remaps cosine similarity from [-1,1] to [0,100]. Empty input on
// either side scores 0 with an explicit explanation rather than an error.
func ScoreSemantic(ctx context.Context, provider embedding.Provider, jobText, jobProfileText, candidateText string) Result {
	combinedJob := strings.TrimSpace(jobText)
	if profile := strings.TrimSpace(jobProfileText); profile != "" {
		combinedJob = strings.TrimSpace(combinedJob + "\n" + profile)
	}
	combinedCandidate := strings.TrimSpace(candidateText)

	if combinedJob == "" || combinedCandidate == "" {
		return Result{
			Score:       0,
			Explanation: "Insufficient text provided for semantic comparison",
		}
	}
	if provider == nil {
		return Result{
			Score:       0,
			Explanation: "Semantic comparison unavailable; neutral zero score applied",
		}
	}

	vectors, err := provider.Encode(ctx, []string{combinedJob, combinedCandidate})
	if err != nil || len(vectors) != 2 {
		// The resilient provider never fails; a bare provider failing here
		// still degrades to a zero score instead of aborting the evaluation.
		return Result{
			Score:       0,
			Explanation: "Semantic comparison unavailable; neutral zero score applied",
		}
	}

	sim := embedding.Cosine(vectors[0], vectors[1])
	score := int(math.Round(clamp01((sim+1)/2) * 100))

	return Result{
		Score:       score,
		Explanation: fmt.Sprintf("Semantic similarity score computed as %d/100", score),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
