package adjustment

import (
	"fmt"
	"sort"

	"github.com/logiscareer/candidate-engine/internal/types"
)

// Engine evaluates the rule table against a feature snapshot.
type Engine struct {
	rules []Rule
}

// NewEngine returns an engine over the default rule table.
func NewEngine() *Engine {
	return &Engine{rules: DefaultRules()}
}

// NewEngineWithRules returns an engine over a custom rule table.
func NewEngineWithRules(rules []Rule) *Engine {
	return &Engine{rules: rules}
}

// Apply evaluates every rule, applies all that fire in descending priority
// order, and returns the clamped adjusted score with the audit trail. The
// order matters only for the trail; deltas sum commutatively.
func (e *Engine) Apply(baseScore float64, features *EvaluationFeatures) (float64, []types.AdjustmentRecord) {
	fired := make([]Rule, 0, len(e.rules))
	for _, rule := range e.rules {
		if rule.Fires(features) {
			fired = append(fired, rule)
		}
	}
	sort.SliceStable(fired, func(i, j int) bool {
		return fired[i].Priority > fired[j].Priority
	})

	adjusted := baseScore
	records := make([]types.AdjustmentRecord, 0, len(fired))
	for _, rule := range fired {
		adjusted += rule.Points
		records = append(records, types.AdjustmentRecord{
			RuleID:      rule.ID,
			RuleName:    rule.Name,
			Kind:        rule.Kind,
			Points:      rule.Points,
			Reason:      reasonFor(rule, features),
			TriggeredBy: features.Snapshot(rule.featureNames()),
		})
	}

	return clampScore(adjusted), records
}

func reasonFor(rule Rule, features *EvaluationFeatures) string {
	if rule.ID == "JOB_HOPPING" {
		return fmt.Sprintf("%s (%d jobs in %.1f years)",
			rule.Description, features.ShortStintJobs, features.ShortStintSpanYears)
	}
	return rule.Description
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
