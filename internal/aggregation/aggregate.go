// Package aggregation combines section scores and weights into the base
// compatibility score.
package aggregation

import (
	"errors"
	"math"
)

// Input-contract errors. These indicate caller bugs and are never silently
// defaulted.
var (
	ErrEmptySectionScores = errors.New("section scores cannot be empty")
	ErrNoMatchingWeights  = errors.New("no matching weights for provided section scores")
)

// Result holds the rounded base score and the per-section contributions
// recorded for audit.
type Result struct {
	BaseScore     int
	Contributions map[string]float64 // rounded to 2 decimals
	Weights       map[string]float64 // normalized weights actually applied
}

// Aggregate filters the weight table to sections that are present,
// renormalizes the filtered subset to sum 1, and computes the weighted sum
// over ALL section scores present. Sections without an assigned weight
// contribute 0 but still appear in the contributions map.
//
// NOTE: summing over unweighted sections (rather than restricting to
// weighted ones) matches the upstream behavior exactly; see DESIGN.md.
func Aggregate(sectionScores map[string]int, weightTable map[string]float64) (Result, error) {
	if len(sectionScores) == 0 {
		return Result{}, ErrEmptySectionScores
	}

	activeWeights := make(map[string]float64)
	totalWeight := 0.0
	for section, weight := range weightTable {
		if _, ok := sectionScores[section]; ok {
			activeWeights[section] = weight
			totalWeight += weight
		}
	}
	if len(activeWeights) == 0 || totalWeight <= 0 {
		return Result{}, ErrNoMatchingWeights
	}

	for section := range activeWeights {
		activeWeights[section] /= totalWeight
	}

	weightedSum := 0.0
	contributions := make(map[string]float64, len(sectionScores))
	for section, score := range sectionScores {
		contribution := float64(score) * activeWeights[section]
		contributions[section] = math.Round(contribution*100) / 100
		weightedSum += contribution
	}

	return Result{
		BaseScore:     int(math.Round(weightedSum)),
		Contributions: contributions,
		Weights:       activeWeights,
	}, nil
}
