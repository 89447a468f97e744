// Package confidence quantifies how trustworthy an evaluation result is,
// combining input completeness, cross-section signal agreement, and
// distance from the decision boundaries.
package confidence

import (
	"fmt"
	"math"
	"sort"

	"github.com/logiscareer/candidate-engine/internal/types"
)

// Component weights; must sum to 1.
const (
	completenessWeight = 0.40
	agreementWeight    = 0.35
	boundaryWeight     = 0.25
)

// Level cutoffs on the combined 0-1 confidence score.
const (
	veryHighCutoff = 0.85
	highCutoff     = 0.70
	mediumCutoff   = 0.50
)

// decisionBoundaries are the total-score thresholds between decision bands.
var decisionBoundaries = []float64{85, 60, 40}

const maxUncertaintyFactors = 5

type criticalField struct {
	name    string
	present func(*types.Job, *types.Candidate) bool
}

// criticalFields drive completeness. Zero and empty count as missing.
var criticalFields = []criticalField{
	{"total_experience_years", func(_ *types.Job, c *types.Candidate) bool { return c.TotalExperienceYears > 0 }},
	{"skills", func(_ *types.Job, c *types.Candidate) bool { return len(c.Skills) > 0 }},
	{"expected_salary", func(_ *types.Job, c *types.Candidate) bool { return c.ExpectedSalary > 0 }},
	{"nationality", func(_ *types.Job, c *types.Candidate) bool { return c.Nationality != "" }},
	{"current_country", func(_ *types.Job, c *types.Candidate) bool { return c.CurrentCountry != "" }},
	{"required_skills", func(j *types.Job, _ *types.Candidate) bool { return len(j.RequiredSkills) > 0 }},
	{"min_experience_years", func(j *types.Job, _ *types.Candidate) bool { return j.MinExperienceYears > 0 }},
	{"salary_min", func(j *types.Job, _ *types.Candidate) bool { return j.SalaryMin > 0 }},
	{"salary_max", func(j *types.Job, _ *types.Candidate) bool { return j.SalaryMax > 0 }},
}

// Compute derives the confidence metrics for an evaluation. sectionScores
// are the raw 0-100 section values; totalScore is the final score after
// adjustments and interactions.
func Compute(job *types.Job, candidate *types.Candidate, sectionScores map[string]int, totalScore int) types.ConfidenceMetrics {
	completeness, missing := dataCompleteness(job, candidate)
	agreement := signalAgreement(sectionScores)
	boundary := boundaryDistanceFactor(totalScore)

	score := completenessWeight*completeness + agreementWeight*agreement + boundaryWeight*boundary
	score = math.Round(score*1000) / 1000

	return types.ConfidenceMetrics{
		Level:              levelFor(score),
		ConfidenceScore:    score,
		SignalAgreement:    math.Round(agreement*1000) / 1000,
		DataCompleteness:   math.Round(completeness*1000) / 1000,
		UncertaintyFactors: uncertaintyFactors(job, candidate, completeness, missing, agreement, totalScore),
	}
}

func dataCompleteness(job *types.Job, candidate *types.Candidate) (float64, []string) {
	present := 0
	var missing []string
	for _, f := range criticalFields {
		if f.present(job, candidate) {
			present++
		} else {
			missing = append(missing, f.name)
		}
	}
	return float64(present) / float64(len(criticalFields)), missing
}

// signalAgreement measures how much the section scores agree, via the
// coefficient of variation. Fewer than two signals cannot agree or
// disagree, so agreement defaults to 0.5.
func signalAgreement(sectionScores map[string]int) float64 {
	if len(sectionScores) < 2 {
		return 0.5
	}

	values := make([]float64, 0, len(sectionScores))
	sum := 0.0
	for _, s := range sectionScores {
		values = append(values, float64(s))
		sum += float64(s)
	}
	mean := sum / float64(len(values))
	if mean == 0 {
		return 1.0
	}

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	stddev := math.Sqrt(variance / float64(len(values)))
	cv := stddev / mean

	return clamp01(1 - cv/0.5)
}

// boundaryDistanceFactor grows with distance from the nearest decision
// boundary, saturating at 10 points away.
func boundaryDistanceFactor(totalScore int) float64 {
	minDist := math.MaxFloat64
	for _, b := range decisionBoundaries {
		if d := math.Abs(float64(totalScore) - b); d < minDist {
			minDist = d
		}
	}
	return clamp01(minDist / 10)
}

func levelFor(score float64) types.ConfidenceLevel {
	switch {
	case score >= veryHighCutoff:
		return types.ConfidenceVeryHigh
	case score >= highCutoff:
		return types.ConfidenceHigh
	case score >= mediumCutoff:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}

// uncertaintyFactors ranks the reasons to distrust this evaluation,
// capped at maxUncertaintyFactors.
func uncertaintyFactors(job *types.Job, candidate *types.Candidate, completeness float64, missing []string, agreement float64, totalScore int) []string {
	var factors []string

	if completeness < 0.7 {
		factors = append(factors, fmt.Sprintf("incomplete_data (%.0f%% complete)", completeness*100))
	}
	sort.Strings(missing)
	for i, field := range missing {
		if i >= 3 {
			break
		}
		factors = append(factors, "missing_"+field)
	}
	if agreement < 0.6 {
		factors = append(factors, "conflicting_signals")
	}
	if boundaryDistanceFactor(totalScore) <= 0.5 {
		factors = append(factors, "score_near_decision_boundary")
	}
	if candidate.TotalExperienceYears == 0 {
		factors = append(factors, "no_work_experience")
	}
	if len(candidate.Skills) == 0 {
		factors = append(factors, "no_skills_listed")
	}
	if job.MaxExperienceYears != nil && candidate.TotalExperienceYears > 1.5*float64(*job.MaxExperienceYears) {
		factors = append(factors, "significant_overqualification")
	}
	if job.SalaryMax > 0 && float64(candidate.ExpectedSalary) > 1.2*float64(job.SalaryMax) {
		factors = append(factors, "salary_expectation_very_high")
	}

	if len(factors) > maxUncertaintyFactors {
		factors = factors[:maxUncertaintyFactors]
	}
	return factors
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
