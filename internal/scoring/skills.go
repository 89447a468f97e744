package scoring

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/logiscareer/candidate-engine/internal/skills"
	"github.com/logiscareer/candidate-engine/internal/types"
)

// SkillsResult extends Result with the full match breakdown.
type SkillsResult struct {
	Result
	Breakdown types.SkillMatchBreakdown
}

// ScoreSkills scores candidate skills against the job's required and
// preferred skill lists using the multi-strategy matcher. Required and
// preferred match rates combine 70/30. No skills specified on the job
// scores 100; required skills with an empty candidate list scores 0.
func ScoreSkills(ctx context.Context, matcher *skills.Matcher, required, preferred, candidateSkills []string) SkillsResult {
	if len(required) == 0 && len(preferred) == 0 {
		return SkillsResult{
			Result: Result{Score: 100, Explanation: "No skills specified for this job"},
			Breakdown: types.SkillMatchBreakdown{
				RequiredMatchScore:  100,
				PreferredMatchScore: 100,
			},
		}
	}

	match := matcher.Match(ctx, required, preferred, candidateSkills)

	breakdown := types.SkillMatchBreakdown{
		MatchedRequired:     matchNames(match.MatchedRequired),
		MatchedPreferred:    matchNames(match.MatchedPreferred),
		MissingRequired:     match.MissingRequired,
		MissingPreferred:    match.MissingPreferred,
		RequiredMatchScore:  match.RequiredMatchScore,
		PreferredMatchScore: match.PreferredMatchScore,
		ExactMatches:        match.ExactMatches,
		SynonymMatches:      match.SynonymMatches,
		SemanticMatches:     match.SemanticMatches,
		Matches:             append(append([]types.SkillMatchDetail(nil), match.MatchedRequired...), match.MatchedPreferred...),
	}

	return SkillsResult{
		Result: Result{
			Score:       int(math.Round(match.OverallScore)),
			Explanation: skillsExplanation(required, preferred, match),
		},
		Breakdown: breakdown,
	}
}

func matchNames(matches []types.SkillMatchDetail) []string {
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m.CandidateSkill)
	}
	return names
}

func skillsExplanation(required, preferred []string, match skills.MatchResult) string {
	var parts []string

	if len(required) > 0 {
		pct := float64(len(match.MatchedRequired)) / float64(len(required)) * 100
		parts = append(parts, fmt.Sprintf("Required skills: %d/%d matched (%.0f%%)",
			len(match.MatchedRequired), len(required), pct))
	}
	if len(preferred) > 0 {
		pct := float64(len(match.MatchedPreferred)) / float64(len(preferred)) * 100
		parts = append(parts, fmt.Sprintf("Preferred skills: %d/%d matched (%.0f%%)",
			len(match.MatchedPreferred), len(preferred), pct))
	}

	var kinds []string
	if match.ExactMatches > 0 {
		kinds = append(kinds, fmt.Sprintf("%d exact", match.ExactMatches))
	}
	if match.SynonymMatches > 0 {
		kinds = append(kinds, fmt.Sprintf("%d synonym", match.SynonymMatches))
	}
	if match.SemanticMatches > 0 {
		kinds = append(kinds, fmt.Sprintf("%d semantic", match.SemanticMatches))
	}
	if len(kinds) > 0 {
		parts = append(parts, "Match types: "+strings.Join(kinds, ", "))
	}

	return strings.Join(parts, " | ")
}
