package types

// Decision categories returned by the evaluation engine.
const (
	DecisionRejected       = "REJECTED"
	DecisionStrongMatch    = "STRONG_MATCH"
	DecisionPotentialMatch = "POTENTIAL_MATCH"
	DecisionWeakMatch      = "WEAK_MATCH"
	DecisionNotRecommended = "NOT_RECOMMENDED"
)

// ConfidenceLevel is a categorical confidence bucket.
type ConfidenceLevel string

// Confidence levels, from least to most trustworthy.
const (
	ConfidenceLow      ConfidenceLevel = "low"
	ConfidenceMedium   ConfidenceLevel = "medium"
	ConfidenceHigh     ConfidenceLevel = "high"
	ConfidenceVeryHigh ConfidenceLevel = "very_high"
)

// SkillMatchDetail describes how a single job skill was matched.
type SkillMatchDetail struct {
	JobSkill       string  `json:"job_skill"`
	CandidateSkill string  `json:"candidate_skill"`
	MatchType      string  `json:"match_type"` // exact, synonym, semantic
	Confidence     float64 `json:"confidence"`
	Explanation    string  `json:"explanation"`
}

// SkillMatchBreakdown carries the matched/missing sets split by
// required vs preferred, plus per-match-type counts.
type SkillMatchBreakdown struct {
	MatchedRequired  []string `json:"matched_required"`
	MatchedPreferred []string `json:"matched_preferred"`
	MissingRequired  []string `json:"missing_required"`
	MissingPreferred []string `json:"missing_preferred"`

	RequiredMatchScore  float64 `json:"required_match_score"`
	PreferredMatchScore float64 `json:"preferred_match_score"`

	ExactMatches    int `json:"exact_matches"`
	SynonymMatches  int `json:"synonym_matches"`
	SemanticMatches int `json:"semantic_matches"`

	Matches []SkillMatchDetail `json:"matches,omitempty"`
}

// SectionScore is the result of a single section scorer combined with
// its aggregation weight and contribution. Immutable once produced.
type SectionScore struct {
	Score        int                  `json:"score"` // 0-100
	Weight       float64              `json:"weight"`
	Contribution float64              `json:"contribution"` // rounded to 2 decimals
	Explanation  string               `json:"explanation"`
	Details      *SkillMatchBreakdown `json:"details,omitempty"`
}

// AdjustmentRecord captures a contextual bonus or penalty that fired.
type AdjustmentRecord struct {
	RuleID      string             `json:"rule_id"`
	RuleName    string             `json:"rule_name"`
	Kind        string             `json:"kind"` // bonus or penalty
	Points      float64            `json:"points"`
	Reason      string             `json:"reason"`
	TriggeredBy map[string]float64 `json:"triggered_by"`
}

// FeatureInteraction reports a detected nonlinear cross-signal pattern.
type FeatureInteraction struct {
	InteractionID string   `json:"interaction_id"`
	Features      []string `json:"features"`
	Kind          string   `json:"kind"` // compensation, amplification, pattern_detection
	Impact        float64  `json:"impact"`
	Explanation   string   `json:"explanation"`
}

// ConfidenceMetrics quantifies uncertainty of an evaluation result.
type ConfidenceMetrics struct {
	Level              ConfidenceLevel `json:"level"`
	ConfidenceScore    float64         `json:"confidence_score"` // 0-1
	SignalAgreement    float64         `json:"signal_agreement"` // 0-1
	DataCompleteness   float64         `json:"data_completeness"` // 0-1
	UncertaintyFactors []string        `json:"uncertainty_factors"` // at most 5, ranked
}

// EvaluationResult is the terminal aggregate of a single Job x Candidate
// evaluation. Created once per call and never mutated afterwards.
type EvaluationResult struct {
	JobID       string `json:"job_id"`
	CandidateID string `json:"candidate_id"`

	Decision   string `json:"decision"`
	TotalScore int    `json:"total_score"`
	BaseScore  int    `json:"base_score"`

	IsRejected        bool   `json:"is_rejected"`
	RejectionRuleCode string `json:"rejection_rule_code,omitempty"`
	RejectionReason   string `json:"rejection_reason,omitempty"`

	SectionScores map[string]SectionScore `json:"section_scores,omitempty"`
	WeightProfile string                  `json:"weight_profile,omitempty"`

	MatchedSkills []string `json:"matched_skills,omitempty"`
	MissingSkills []string `json:"missing_skills,omitempty"`

	RuleTrace    []string             `json:"rule_trace"`
	Adjustments  []AdjustmentRecord   `json:"adjustments,omitempty"`
	Interactions []FeatureInteraction `json:"interactions,omitempty"`
	Confidence   *ConfidenceMetrics   `json:"confidence,omitempty"`

	EvaluatedAt  string `json:"evaluated_at"`
	ModelVersion string `json:"model_version"`
}
