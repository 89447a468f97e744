package adjustment

// Rule kinds.
const (
	KindBonus   = "bonus"
	KindPenalty = "penalty"
)

// Rule is a declarative contextual adjustment. All conditions must hold for
// the rule to fire; firing rules are non-exclusive and their points sum.
type Rule struct {
	ID          string
	Name        string
	Kind        string
	Points      float64
	Priority    int // higher evaluates first
	Conditions  []Condition
	Description string
}

// Fires reports whether every condition holds for the feature snapshot.
func (r Rule) Fires(features *EvaluationFeatures) bool {
	for _, c := range r.Conditions {
		if !c.Holds(features) {
			return false
		}
	}
	return true
}

func (r Rule) featureNames() []FeatureName {
	names := make([]FeatureName, 0, len(r.Conditions))
	for _, c := range r.Conditions {
		names = append(names, c.Feature)
	}
	return names
}

// DefaultRules returns the standard rule table. The GCC bonus is tiered:
// the minor tier covers [1,5) years, expressed as paired at-least and
// less-than conditions, so the major tier replaces rather than stacks
// with it.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:       "GCC_EXP_BONUS",
			Name:     "GCC Experience Bonus",
			Kind:     KindBonus,
			Points:   5,
			Priority: 10,
			Conditions: []Condition{
				{Feature: FeatureGCCExperienceYears, Kind: CondAtLeast, Min: 1},
				{Feature: FeatureGCCExperienceYears, Kind: CondLessThan, Max: 5},
			},
			Description: "Candidate has relevant GCC work experience",
		},
		{
			ID:       "GCC_EXP_MAJOR_BONUS",
			Name:     "Major GCC Experience Bonus",
			Kind:     KindBonus,
			Points:   8,
			Priority: 11,
			Conditions: []Condition{
				{Feature: FeatureGCCExperienceYears, Kind: CondAtLeast, Min: 5},
			},
			Description: "Candidate has extensive GCC work experience (5+ years)",
		},
		{
			ID:       "PERFECT_SKILLS",
			Name:     "Perfect Required Skills Match",
			Kind:     KindBonus,
			Points:   5,
			Priority: 15,
			Conditions: []Condition{
				{Feature: FeatureRequiredSkillMatchRate, Kind: CondAtLeast, Min: 1.0},
			},
			Description: "All required skills matched",
		},
		{
			ID:       "CRITICAL_SKILL_GAP",
			Name:     "Critical Skill Gap",
			Kind:     KindPenalty,
			Points:   -8,
			Priority: 20,
			Conditions: []Condition{
				{Feature: FeatureRequiredSkillMatchRate, Kind: CondLessThan, Max: 0.6},
			},
			Description: "Less than 60% of required skills matched",
		},
		{
			ID:       "SLIGHT_OVERQUALIFIED_BONUS",
			Name:     "Slightly Overqualified Bonus",
			Kind:     KindBonus,
			Points:   2,
			Priority: 5,
			Conditions: []Condition{
				{Feature: FeatureExperienceOverMax, Kind: CondRange, Min: 1, Max: 2},
			},
			Description: "Candidate slightly exceeds the experience ceiling",
		},
		{
			ID:       "SEVERE_OVERQUALIFIED_PENALTY",
			Name:     "Severely Overqualified Penalty",
			Kind:     KindPenalty,
			Points:   -5,
			Priority: 6,
			Conditions: []Condition{
				{Feature: FeatureExperienceOverMax, Kind: CondAtLeast, Min: 5},
			},
			Description: "Candidate greatly exceeds the experience ceiling (flight risk)",
		},
		{
			ID:       "SALARY_SWEET_SPOT",
			Name:     "Salary Sweet Spot",
			Kind:     KindBonus,
			Points:   3,
			Priority: 7,
			Conditions: []Condition{
				{Feature: FeatureSalaryPosition, Kind: CondRange, Min: 0.45, Max: 0.55},
			},
			Description: "Salary expectation sits at the middle of the band",
		},
		{
			ID:       "SALARY_FLEXIBILITY",
			Name:     "Salary Flexibility Bonus",
			Kind:     KindBonus,
			Points:   1.5,
			Priority: 6,
			Conditions: []Condition{
				{Feature: FeatureSalaryPosition, Kind: CondLessThan, Max: 0.45},
			},
			Description: "Salary expectation is in the lower part of the band",
		},
		{
			ID:       "RECENT_EDUCATION",
			Name:     "Recent Education Bonus",
			Kind:     KindBonus,
			Points:   2,
			Priority: 3,
			Conditions: []Condition{
				{Feature: FeatureYearsSinceGraduation, Kind: CondAtMost, Max: 3},
			},
			Description: "Graduated within the last 3 years",
		},
		{
			ID:       "JOB_HOPPING",
			Name:     "Job Hopping Penalty",
			Kind:     KindPenalty,
			Points:   -4,
			Priority: 8,
			Conditions: []Condition{
				{Feature: FeatureShortStintJobs, Kind: CondAtLeast, Min: 3},
			},
			Description: "Frequent short employment stints",
		},
		{
			ID:       "CAREER_PROGRESSION",
			Name:     "Career Progression Bonus",
			Kind:     KindBonus,
			Points:   3,
			Priority: 4,
			Conditions: []Condition{
				{Feature: FeatureCareerProgression, Kind: CondIsTrue},
			},
			Description: "Employment history shows upward title progression",
		},
		{
			ID:       "INDUSTRY_CONTINUITY",
			Name:     "Industry Continuity Bonus",
			Kind:     KindBonus,
			Points:   3,
			Priority: 9,
			Conditions: []Condition{
				{Feature: FeatureSameIndustryJobs, Kind: CondAtLeast, Min: 2},
			},
			Description: "Consecutive recent roles in the job's industry",
		},
	}
}
