// Package engine orchestrates the full evaluation pipeline: hard rejection
// gate, section scoring, dynamic weighting, aggregation, contextual
// adjustments, feature interactions, confidence, and decision assembly.
package engine

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/logiscareer/candidate-engine/internal/adjustment"
	"github.com/logiscareer/candidate-engine/internal/aggregation"
	"github.com/logiscareer/candidate-engine/internal/confidence"
	"github.com/logiscareer/candidate-engine/internal/embedding"
	"github.com/logiscareer/candidate-engine/internal/interaction"
	"github.com/logiscareer/candidate-engine/internal/rules"
	"github.com/logiscareer/candidate-engine/internal/scoring"
	"github.com/logiscareer/candidate-engine/internal/skills"
	"github.com/logiscareer/candidate-engine/internal/types"
	"github.com/logiscareer/candidate-engine/internal/weights"
)

// ModelVersion is stamped on every result for auditability.
const ModelVersion = "4.0.0"

// Decision thresholds on the final total score.
const (
	strongMatchThreshold    = 85
	potentialMatchThreshold = 60
	weakMatchThreshold      = 40
)

// Section names used across scoring, weighting, and aggregation.
const (
	SectionSkills     = weights.SectionSkills
	SectionExperience = weights.SectionExperience
	SectionSemantic   = weights.SectionSemantic
	SectionDomain     = weights.SectionDomain
	SectionEducation  = "education"
	SectionSalary     = "salary"
)

// Input-contract errors.
var (
	ErrNilJob       = errors.New("job must not be nil")
	ErrNilCandidate = errors.New("candidate must not be nil")
)

// Evaluator runs the evaluation pipeline. Safe for concurrent use; all
// collaborators are read-only after construction.
type Evaluator struct {
	gate     *rules.Gate
	matcher  *skills.Matcher
	provider embedding.Provider
	adjuster *adjustment.Engine
	now      func() time.Time
}

// New creates an evaluator using the wall clock. A nil provider disables
// semantic matching and scores semantic sections neutrally.
func New(provider embedding.Provider) *Evaluator {
	return NewAt(provider, time.Now)
}

// NewAt creates an evaluator with an injected clock, so repeated runs on the
// same inputs produce identical results.
func NewAt(provider embedding.Provider, now func() time.Time) *Evaluator {
	return &Evaluator{
		gate:     rules.NewGateAt(now),
		matcher:  skills.NewMatcher(skills.NewTaxonomy(), provider),
		provider: provider,
		adjuster: adjustment.NewEngine(),
		now:      now,
	}
}

// Evaluate runs the full pipeline for one job/candidate pair. A gate
// rejection terminates early with a REJECTED result; scoring errors on
// optional data never occur since scorers substitute neutral defaults.
func (e *Evaluator) Evaluate(ctx context.Context, job *types.Job, candidate *types.Candidate) (*types.EvaluationResult, error) {
	if job == nil {
		return nil, ErrNilJob
	}
	if candidate == nil {
		return nil, ErrNilCandidate
	}

	result := &types.EvaluationResult{
		JobID:        job.JobID,
		CandidateID:  candidate.CandidateID,
		EvaluatedAt:  e.now().UTC().Format(time.RFC3339),
		ModelVersion: ModelVersion,
	}

	gateResult := e.gate.Evaluate(job, candidate)
	result.RuleTrace = gateResult.RuleTrace
	if !gateResult.IsEligible {
		result.IsRejected = true
		result.Decision = types.DecisionRejected
		result.RejectionRuleCode = gateResult.RejectionRuleCode
		result.RejectionReason = gateResult.RejectionReason
		return result, nil
	}

	// Section scoring.
	skillsResult := scoring.ScoreSkills(ctx, e.matcher, job.RequiredSkills, job.PreferredSkills, candidate.Skills)
	experienceResult := scoring.ScoreExperience(job.MinExperienceYears, job.MaxExperienceYears, candidate.TotalExperienceYears)
	semanticResult := scoring.ScoreSemantic(ctx, e.provider,
		job.JobDescription, job.DesiredCandidateProfile, candidateText(candidate))
	domainResult := scoring.ScoreDomain(job.Industry, job.SubIndustry, candidate.EmploymentSummary)
	educationResult := scoring.ScoreEducation(candidate.EducationLevel)
	salaryResult := scoring.ScoreSalary(job.SalaryMin, job.SalaryMax, candidate.ExpectedSalary)

	sectionScores := map[string]int{
		SectionSkills:     skillsResult.Score,
		SectionExperience: experienceResult.Score,
		SectionSemantic:   semanticResult.Score,
		SectionDomain:     domainResult.Score,
		SectionEducation:  educationResult.Score,
		SectionSalary:     salaryResult.Score,
	}
	explanations := map[string]string{
		SectionSkills:     skillsResult.Explanation,
		SectionExperience: experienceResult.Explanation,
		SectionSemantic:   semanticResult.Explanation,
		SectionDomain:     domainResult.Explanation,
		SectionEducation:  educationResult.Explanation,
		SectionSalary:     salaryResult.Explanation,
	}

	// Dynamic weighting and aggregation.
	weightTable, profileName := weights.SelectProfile(job)
	aggregated, err := aggregation.Aggregate(sectionScores, weightTable)
	if err != nil {
		return nil, err
	}
	result.BaseScore = aggregated.BaseScore
	result.WeightProfile = profileName

	result.SectionScores = make(map[string]types.SectionScore, len(sectionScores))
	for section, score := range sectionScores {
		ss := types.SectionScore{
			Score:        score,
			Weight:       aggregated.Weights[section],
			Contribution: aggregated.Contributions[section],
			Explanation:  explanations[section],
		}
		if section == SectionSkills {
			breakdown := skillsResult.Breakdown
			ss.Details = &breakdown
		}
		result.SectionScores[section] = ss
	}
	result.MatchedSkills = append(skillsResult.Breakdown.MatchedRequired, skillsResult.Breakdown.MatchedPreferred...)
	result.MissingSkills = append(skillsResult.Breakdown.MissingRequired, skillsResult.Breakdown.MissingPreferred...)

	// Contextual adjustments.
	features := adjustment.ExtractFeatures(job, candidate, requiredMatchRate(job, skillsResult), e.now())
	adjusted, adjustments := e.adjuster.Apply(float64(result.BaseScore), features)
	result.Adjustments = adjustments

	// Feature interactions, additive on the adjusted score.
	interactions := interaction.Detect(interaction.Inputs{
		SkillsScore:              skillsResult.Score,
		ExperienceScore:          experienceResult.Score,
		SemanticScore:            semanticResult.Score,
		DomainScore:              domainResult.Score,
		CandidateExperienceYears: candidate.TotalExperienceYears,
		JobMinExperienceYears:    job.MinExperienceYears,
		JobMaxExperienceYears:    job.MaxExperienceYears,
		ExpectedSalary:           candidate.ExpectedSalary,
		SalaryMax:                job.SalaryMax,
	})
	result.Interactions = interactions

	total := clampScore(adjusted + interaction.TotalImpact(interactions))
	result.TotalScore = int(math.Round(total))

	// Confidence and decision.
	conf := confidence.Compute(job, candidate, sectionScores, result.TotalScore)
	result.Confidence = &conf
	result.Decision = decide(result.TotalScore, conf.Level)

	return result, nil
}

// decide maps the total score to a decision band. A strong match backed by
// low confidence is demoted to potential so reviewers take a second look.
func decide(totalScore int, level types.ConfidenceLevel) string {
	switch {
	case totalScore >= strongMatchThreshold:
		if level == types.ConfidenceLow {
			return types.DecisionPotentialMatch
		}
		return types.DecisionStrongMatch
	case totalScore >= potentialMatchThreshold:
		return types.DecisionPotentialMatch
	case totalScore >= weakMatchThreshold:
		return types.DecisionWeakMatch
	default:
		return types.DecisionNotRecommended
	}
}

// requiredMatchRate is the count-based required-skill match rate used by the
// adjustment rules. No required skills counts as a full match.
func requiredMatchRate(job *types.Job, skillsResult scoring.SkillsResult) float64 {
	if len(job.RequiredSkills) == 0 {
		return 1.0
	}
	return float64(len(skillsResult.Breakdown.MatchedRequired)) / float64(len(job.RequiredSkills))
}

// candidateText builds the candidate side of the semantic comparison,
// preferring raw CV text over reconstructed profile text.
func candidateText(candidate *types.Candidate) string {
	if strings.TrimSpace(candidate.CVText) != "" {
		return candidate.CVText
	}

	var parts []string
	if candidate.EmploymentSummary != "" {
		parts = append(parts, candidate.EmploymentSummary)
	}
	if len(candidate.Skills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(candidate.Skills, ", "))
	}
	for _, entry := range candidate.EmploymentHistory {
		parts = append(parts, strings.TrimSpace(entry.JobTitle+" at "+entry.CompanyName))
	}
	return strings.Join(parts, "\n")
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
