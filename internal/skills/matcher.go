package skills

import (
	"context"
	"fmt"

	"github.com/logiscareer/candidate-engine/internal/embedding"
	"github.com/logiscareer/candidate-engine/internal/types"
)

// Match confidence by strategy, and the cosine threshold a semantic
// candidate must clear before it counts as a match.
const (
	ExactConfidence    = 1.0
	SynonymConfidence  = 0.95
	SemanticConfidence = 0.85
	semanticThreshold  = 0.75

	requiredWeight  = 0.7
	preferredWeight = 0.3
)

// MatchResult is the outcome of matching a job's skill lists against a
// candidate's skills.
type MatchResult struct {
	OverallScore        float64 // 0-100
	RequiredMatchScore  float64 // 0-100
	PreferredMatchScore float64 // 0-100

	MatchedRequired  []types.SkillMatchDetail
	MatchedPreferred []types.SkillMatchDetail
	MissingRequired  []string
	MissingPreferred []string

	ExactMatches    int
	SynonymMatches  int
	SemanticMatches int
}

// Matcher matches job skills against candidate skills using exact,
// synonym, and embedding-based semantic strategies, in that order.
// Safe for concurrent use; the taxonomy and provider are read-only.
type Matcher struct {
	taxonomy *Taxonomy
	provider embedding.Provider
}

// NewMatcher creates a matcher over the given taxonomy and embedding
// provider. A nil provider disables semantic matching.
func NewMatcher(taxonomy *Taxonomy, provider embedding.Provider) *Matcher {
	return &Matcher{taxonomy: taxonomy, provider: provider}
}

// Match matches required and preferred job skills against the candidate's
// skills. Required and preferred match rates combine 70/30 into the overall
// score; a side with no skills listed does not dilute the other.
func (m *Matcher) Match(ctx context.Context, required, preferred, candidateSkills []string) MatchResult {
	if len(required) == 0 && len(preferred) == 0 {
		return MatchResult{OverallScore: 100, RequiredMatchScore: 100, PreferredMatchScore: 100}
	}
	if len(candidateSkills) == 0 {
		return MatchResult{
			MissingRequired:  append([]string(nil), required...),
			MissingPreferred: append([]string(nil), preferred...),
		}
	}

	result := MatchResult{}
	candidateVectors := m.encodeSkills(ctx, candidateSkills)

	result.RequiredMatchScore = m.matchSide(ctx, required, candidateSkills, candidateVectors,
		&result.MatchedRequired, &result.MissingRequired, &result)
	result.PreferredMatchScore = m.matchSide(ctx, preferred, candidateSkills, candidateVectors,
		&result.MatchedPreferred, &result.MissingPreferred, &result)

	switch {
	case len(preferred) == 0:
		result.OverallScore = result.RequiredMatchScore
		result.PreferredMatchScore = 100
	case len(required) == 0:
		result.OverallScore = requiredWeight*100 + preferredWeight*result.PreferredMatchScore
		result.RequiredMatchScore = 100
	default:
		result.OverallScore = requiredWeight*result.RequiredMatchScore +
			preferredWeight*result.PreferredMatchScore
	}

	return result
}

// matchSide matches one job skill list, appending matches and misses, and
// returns the confidence-weighted match rate on a 0-100 scale.
func (m *Matcher) matchSide(
	ctx context.Context,
	jobSkills, candidateSkills []string,
	candidateVectors [][]float32,
	matched *[]types.SkillMatchDetail,
	missing *[]string,
	counts *MatchResult,
) float64 {
	if len(jobSkills) == 0 {
		return 0
	}

	totalConfidence := 0.0
	for _, jobSkill := range jobSkills {
		detail, ok := m.matchOne(ctx, jobSkill, candidateSkills, candidateVectors)
		if !ok {
			*missing = append(*missing, jobSkill)
			continue
		}
		*matched = append(*matched, detail)
		totalConfidence += detail.Confidence
		switch detail.MatchType {
		case "exact":
			counts.ExactMatches++
		case "synonym":
			counts.SynonymMatches++
		case "semantic":
			counts.SemanticMatches++
		}
	}

	return totalConfidence / float64(len(jobSkills)) * 100
}

// matchOne finds the best match for a single job skill, trying exact and
// synonym strategies first and falling back to embedding similarity.
func (m *Matcher) matchOne(
	ctx context.Context,
	jobSkill string,
	candidateSkills []string,
	candidateVectors [][]float32,
) (types.SkillMatchDetail, bool) {
	jobNorm := Normalize(jobSkill)
	jobCanonical := m.taxonomy.Canonical(jobSkill)

	for _, candidateSkill := range candidateSkills {
		if Normalize(candidateSkill) == jobNorm {
			return types.SkillMatchDetail{
				JobSkill:       jobSkill,
				CandidateSkill: candidateSkill,
				MatchType:      "exact",
				Confidence:     ExactConfidence,
				Explanation:    fmt.Sprintf("'%s' matches exactly", candidateSkill),
			}, true
		}
	}

	for _, candidateSkill := range candidateSkills {
		if m.taxonomy.IsExcludedPair(jobSkill, candidateSkill) {
			continue
		}
		if m.taxonomy.Canonical(candidateSkill) == jobCanonical {
			return types.SkillMatchDetail{
				JobSkill:       jobSkill,
				CandidateSkill: candidateSkill,
				MatchType:      "synonym",
				Confidence:     SynonymConfidence,
				Explanation:    fmt.Sprintf("'%s' is a recognized synonym of '%s'", candidateSkill, jobSkill),
			}, true
		}
	}

	if m.provider == nil {
		return types.SkillMatchDetail{}, false
	}

	jobVectors := m.encodeSkills(ctx, []string{jobSkill})
	if len(jobVectors) != 1 {
		return types.SkillMatchDetail{}, false
	}

	bestSim := 0.0
	bestIdx := -1
	for i, candidateSkill := range candidateSkills {
		if i >= len(candidateVectors) {
			break
		}
		if m.taxonomy.IsExcludedPair(jobSkill, candidateSkill) {
			continue
		}
		sim := embedding.Cosine(jobVectors[0], candidateVectors[i])
		if sim > bestSim {
			bestSim = sim
			bestIdx = i
		}
	}

	if bestIdx < 0 || bestSim < semanticThreshold {
		return types.SkillMatchDetail{}, false
	}

	return types.SkillMatchDetail{
		JobSkill:       jobSkill,
		CandidateSkill: candidateSkills[bestIdx],
		MatchType:      "semantic",
		Confidence:     SemanticConfidence,
		Explanation: fmt.Sprintf("'%s' is semantically similar to '%s' (%.2f)",
			candidateSkills[bestIdx], jobSkill, bestSim),
	}, true
}

// encodeSkills encodes skills for semantic comparison, returning nil when
// the provider is absent or fails (semantic matching is then skipped).
func (m *Matcher) encodeSkills(ctx context.Context, skills []string) [][]float32 {
	if m.provider == nil || len(skills) == 0 {
		return nil
	}
	vectors, err := m.provider.Encode(ctx, skills)
	if err != nil {
		return nil
	}
	return vectors
}
