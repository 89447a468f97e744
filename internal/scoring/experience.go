// Package scoring implements the independent section scorers. Each scorer is
// a pure function mapping a job excerpt and candidate excerpt to a 0-100
// score with a human-readable explanation. Scorers never fail on missing
// optional data; they substitute documented neutral defaults instead.
package scoring

import (
	"fmt"
	"math"
)

// Result is the common output of a section scorer.
type Result struct {
	Score       int
	Explanation string
}

// ScoreExperience computes experience alignment against the job's bounds.
// No max bound means any candidate at or above the minimum scores 100.
// Within [min,max] the score maps linearly to [70,100]. Above max yields a
// flat 85: a mild signal only, since the gate already filtered extreme
// overqualification.
func ScoreExperience(minYears int, maxYears *int, candidateYears float64) Result {
	if candidateYears < 0 {
		candidateYears = 0
	}

	if maxYears == nil {
		return Result{
			Score: 100,
			Explanation: fmt.Sprintf(
				"%.1f years experience against minimum requirement of %d years",
				candidateYears, minYears),
		}
	}

	if candidateYears <= float64(*maxYears) {
		rangeSpan := *maxYears - minYears
		if rangeSpan == 0 {
			return Result{
				Score: 100,
				Explanation: fmt.Sprintf(
					"%.1f years experience matches exact requirement of %d years",
					candidateYears, minYears),
			}
		}

		normalized := (candidateYears - float64(minYears)) / float64(rangeSpan)
		score := int(math.Round(70 + normalized*30))
		return Result{
			Score: score,
			Explanation: fmt.Sprintf(
				"%.1f years experience within required range (%d-%d years)",
				candidateYears, minYears, *maxYears),
		}
	}

	return Result{
		Score: 85,
		Explanation: fmt.Sprintf(
			"%.1f years experience exceeds preferred maximum of %d years",
			candidateYears, *maxYears),
	}
}
