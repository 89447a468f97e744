// Package interaction detects nonlinear cross-signal patterns between
// section scores that linear weighting cannot express. Detected impacts are
// additive on top of the adjusted score.
package interaction

import (
	"fmt"

	"github.com/logiscareer/candidate-engine/internal/types"
)

// Interaction kinds.
const (
	KindCompensation     = "compensation"
	KindAmplification    = "amplification"
	KindPatternDetection = "pattern_detection"
)

// Inputs carries everything the detectors condition on. Section scores are
// the raw 0-100 section values before weighting.
type Inputs struct {
	SkillsScore     int
	ExperienceScore int
	SemanticScore   int
	DomainScore     int

	CandidateExperienceYears float64
	JobMinExperienceYears    int
	JobMaxExperienceYears    *int

	ExpectedSalary int
	SalaryMax      int
}

// Detect runs every detector and returns the interactions that fired.
// Detectors are independent; their impacts sum.
func Detect(in Inputs) []types.FeatureInteraction {
	var out []types.FeatureInteraction

	if fi, ok := skillsCompensateExperience(in); ok {
		out = append(out, fi)
	}
	if fi, ok := experienceCompensatesSkills(in); ok {
		out = append(out, fi)
	}
	if fi, ok := salarySkillsTradeoff(in); ok {
		out = append(out, fi)
	}
	if fi, ok := careerChanger(in); ok {
		out = append(out, fi)
	}
	if fi, ok := perfectCandidate(in); ok {
		out = append(out, fi)
	}

	return out
}

// TotalImpact sums the detected impacts.
func TotalImpact(interactions []types.FeatureInteraction) float64 {
	total := 0.0
	for _, fi := range interactions {
		total += fi.Impact
	}
	return total
}

// Excellent skills offset a shortfall in years, provided the candidate is
// at least near the minimum requirement.
func skillsCompensateExperience(in Inputs) (types.FeatureInteraction, bool) {
	if in.SkillsScore < 90 || in.ExperienceScore >= 70 {
		return types.FeatureInteraction{}, false
	}
	if in.CandidateExperienceYears < 0.7*float64(in.JobMinExperienceYears) {
		return types.FeatureInteraction{}, false
	}
	return types.FeatureInteraction{
		InteractionID: "SKILLS_COMP_EXP",
		Features:      []string{"skills", "experience"},
		Kind:          KindCompensation,
		Impact:        3,
		Explanation: fmt.Sprintf("Strong skills (%d) compensate for experience shortfall (%d)",
			in.SkillsScore, in.ExperienceScore),
	}, true
}

// Deep experience offsets a middling skill match when the candidate sits at
// or beyond the job's experience ceiling.
func experienceCompensatesSkills(in Inputs) (types.FeatureInteraction, bool) {
	if in.ExperienceScore < 90 || in.SkillsScore < 60 || in.SkillsScore >= 85 {
		return types.FeatureInteraction{}, false
	}
	if in.JobMaxExperienceYears == nil || in.CandidateExperienceYears < float64(*in.JobMaxExperienceYears) {
		return types.FeatureInteraction{}, false
	}
	return types.FeatureInteraction{
		InteractionID: "EXP_COMP_SKILLS",
		Features:      []string{"experience", "skills"},
		Kind:          KindCompensation,
		Impact:        2,
		Explanation: fmt.Sprintf("Extensive experience (%d) compensates for partial skill match (%d)",
			in.ExperienceScore, in.SkillsScore),
	}, true
}

// High skills at a below-budget salary expectation is exceptional value.
func salarySkillsTradeoff(in Inputs) (types.FeatureInteraction, bool) {
	if in.SkillsScore < 85 || in.SalaryMax <= 0 || in.ExpectedSalary <= 0 {
		return types.FeatureInteraction{}, false
	}
	if float64(in.ExpectedSalary) > 0.9*float64(in.SalaryMax) {
		return types.FeatureInteraction{}, false
	}
	return types.FeatureInteraction{
		InteractionID: "SALARY_SKILLS_TRADEOFF",
		Features:      []string{"skills", "salary"},
		Kind:          KindAmplification,
		Impact:        4,
		Explanation: fmt.Sprintf("High skill match (%d) at a below-budget salary expectation",
			in.SkillsScore),
	}, true
}

// Strong skills but weak overall profile fit suggests a career changer.
// Flagged for reviewer attention without moving the score.
func careerChanger(in Inputs) (types.FeatureInteraction, bool) {
	if in.SkillsScore < 75 || in.SemanticScore >= 60 {
		return types.FeatureInteraction{}, false
	}
	return types.FeatureInteraction{
		InteractionID: "CAREER_CHANGER",
		Features:      []string{"skills", "semantic"},
		Kind:          KindPatternDetection,
		Impact:        0,
		Explanation: fmt.Sprintf("Skills match (%d) but profile fit is low (%d); possible career changer",
			in.SkillsScore, in.SemanticScore),
	}, true
}

// Uniformly excellent sections amplify each other.
func perfectCandidate(in Inputs) (types.FeatureInteraction, bool) {
	if in.SkillsScore < 85 || in.ExperienceScore < 85 || in.SemanticScore < 85 || in.DomainScore < 85 {
		return types.FeatureInteraction{}, false
	}
	return types.FeatureInteraction{
		InteractionID: "PERFECT_CANDIDATE_AMP",
		Features:      []string{"skills", "experience", "semantic", "domain"},
		Kind:          KindAmplification,
		Impact:        5,
		Explanation:   "All sections score 85 or above",
	}, true
}
