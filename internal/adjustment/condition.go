// Package adjustment applies prioritized contextual bonus and penalty rules
// to the base score. Rules are declarative: conditions are tagged variants
// over named features rather than inline code, so the rule table can be
// audited and exhaustively tested.
package adjustment

import "fmt"

// FeatureName identifies a derived evaluation feature.
type FeatureName string

// Features the rule table can condition on.
const (
	FeatureGCCExperienceYears     FeatureName = "gcc_experience_years"
	FeatureRequiredSkillMatchRate FeatureName = "required_skills_match_rate"
	FeatureExperienceOverMax      FeatureName = "experience_over_max_years"
	FeatureSalaryPosition         FeatureName = "salary_position"
	FeatureYearsSinceGraduation   FeatureName = "years_since_graduation"
	FeatureShortStintJobs         FeatureName = "short_stint_jobs"
	FeatureCareerProgression      FeatureName = "has_career_progression"
	FeatureSameIndustryJobs       FeatureName = "consecutive_same_industry_jobs"
)

// ConditionKind tags the variant of a rule condition.
type ConditionKind string

// Condition variants.
const (
	CondAtLeast  ConditionKind = "at_least"  // value >= Min
	CondAtMost   ConditionKind = "at_most"   // value <= Max
	CondLessThan ConditionKind = "less_than" // value < Max
	CondRange    ConditionKind = "range"     // Min <= value <= Max
	CondIsTrue   ConditionKind = "is_true"   // boolean feature is set
)

// Condition is a single predicate over one named feature.
type Condition struct {
	Feature FeatureName
	Kind    ConditionKind
	Min     float64
	Max     float64
}

// Holds evaluates the condition against the feature snapshot. Boolean
// features are represented as 0/1.
func (c Condition) Holds(features *EvaluationFeatures) bool {
	value, ok := features.Value(c.Feature)
	if !ok {
		return false
	}

	switch c.Kind {
	case CondAtLeast:
		return value >= c.Min
	case CondAtMost:
		return value <= c.Max
	case CondLessThan:
		return value < c.Max
	case CondRange:
		return value >= c.Min && value <= c.Max
	case CondIsTrue:
		return value != 0
	default:
		return false
	}
}

// String renders the condition for explanations and test failure output.
func (c Condition) String() string {
	switch c.Kind {
	case CondAtLeast:
		return fmt.Sprintf("%s >= %g", c.Feature, c.Min)
	case CondAtMost:
		return fmt.Sprintf("%s <= %g", c.Feature, c.Max)
	case CondLessThan:
		return fmt.Sprintf("%s < %g", c.Feature, c.Max)
	case CondRange:
		return fmt.Sprintf("%g <= %s <= %g", c.Min, c.Feature, c.Max)
	case CondIsTrue:
		return fmt.Sprintf("%s is true", c.Feature)
	default:
		return string(c.Feature)
	}
}
