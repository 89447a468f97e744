package scoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logiscareer/candidate-engine/internal/skills"
)

func intPtr(v int) *int { return &v }

func TestScoreExperience_NoMaximum(t *testing.T) {
	result := ScoreExperience(3, nil, 10)
	assert.Equal(t, 100, result.Score)
}

func TestScoreExperience_WithinRange(t *testing.T) {
	tests := []struct {
		name  string
		years float64
		want  int
	}{
		{"at minimum", 3, 70},
		{"midpoint", 5.5, 85},
		{"at maximum", 8, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScoreExperience(3, intPtr(8), tt.years)
			assert.Equal(t, tt.want, result.Score)
		})
	}
}

func TestScoreExperience_OverMaximum(t *testing.T) {
	result := ScoreExperience(3, intPtr(8), 10)
	assert.Equal(t, 85, result.Score)
	assert.Contains(t, result.Explanation, "exceeds preferred maximum")
}

func TestScoreExperience_ExactRequirement(t *testing.T) {
	result := ScoreExperience(5, intPtr(5), 5)
	assert.Equal(t, 100, result.Score)
}

func TestScoreEducation(t *testing.T) {
	tests := []struct {
		education string
		want      int
	}{
		{"PhD in Supply Chain", 100},
		{"Doctorate", 100},
		{"Masters Degree", 90},
		{"Bachelor of Science", 80},
		{"Diploma", 70},
		{"High School", 65},
		{"", EducationDefaultScore},
		{"Trade Certification", EducationDefaultScore},
	}
	for _, tt := range tests {
		t.Run(tt.education, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreEducation(tt.education).Score)
		})
	}
}

func TestScoreSalary_Curve(t *testing.T) {
	tests := []struct {
		name     string
		expected int
		want     int
	}{
		{"below minimum", 7000, 100},
		{"at minimum", 8000, 100},
		{"at midpoint", 10000, 90},
		{"at maximum", 12000, 75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreSalary(8000, 12000, tt.expected).Score)
		})
	}
}

func TestScoreSalary_DegenerateRange(t *testing.T) {
	assert.Equal(t, 100, ScoreSalary(10000, 10000, 15000).Score)
}

func TestScoreSalary_NeverBelowFloor(t *testing.T) {
	for expected := 8000; expected <= 12000; expected += 500 {
		score := ScoreSalary(8000, 12000, expected).Score
		assert.GreaterOrEqual(t, score, salaryMinScore)
		assert.LessOrEqual(t, score, salaryMaxScore)
	}
}

func TestScoreDomain(t *testing.T) {
	summary := "5 years in freight forwarding and logistics operations across the GCC"

	both := ScoreDomain("logistics", "freight forwarding", summary)
	assert.Equal(t, 95, both.Score)
	assert.Len(t, both.MatchedDomains, 2)

	one := ScoreDomain("logistics", "cold chain", summary)
	assert.Equal(t, 85, one.Score)

	none := ScoreDomain("banking", "retail banking", summary)
	assert.Equal(t, DomainDefaultScore, none.Score)

	empty := ScoreDomain("logistics", "", "")
	assert.Equal(t, DomainDefaultScore, empty.Score)
}

func TestScoreSemantic_EmptyInputs(t *testing.T) {
	result := ScoreSemantic(context.Background(), nil, "", "", "some cv text")
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, "Insufficient text provided for semantic comparison", result.Explanation)

	result = ScoreSemantic(context.Background(), nil, "job text", "", "")
	assert.Equal(t, 0, result.Score)
}

func TestScoreSkills_NoSkillsSpecified(t *testing.T) {
	matcher := skills.NewMatcher(skills.NewTaxonomy(), nil)
	result := ScoreSkills(context.Background(), matcher, nil, nil, []string{"excel"})
	assert.Equal(t, 100, result.Score)
	assert.Equal(t, "No skills specified for this job", result.Explanation)
}

func TestScoreSkills_FullRequiredMatch(t *testing.T) {
	matcher := skills.NewMatcher(skills.NewTaxonomy(), nil)
	result := ScoreSkills(context.Background(), matcher,
		[]string{"excel", "sql"}, nil, []string{"Excel", "SQL", "Python"})

	assert.Equal(t, 100, result.Score)
	assert.Len(t, result.Breakdown.MatchedRequired, 2)
	assert.Empty(t, result.Breakdown.MissingRequired)
	assert.Contains(t, result.Explanation, "Required skills: 2/2 matched (100%)")
}

func TestScoreSkills_PartialMatchExplanation(t *testing.T) {
	matcher := skills.NewMatcher(skills.NewTaxonomy(), nil)
	result := ScoreSkills(context.Background(), matcher,
		[]string{"excel", "sap"}, []string{"python"}, []string{"excel", "python"})

	require.NotEmpty(t, result.Breakdown.MissingRequired)
	assert.Equal(t, []string{"sap"}, result.Breakdown.MissingRequired)
	assert.Contains(t, result.Explanation, "Required skills: 1/2 matched (50%)")
	assert.Contains(t, result.Explanation, "Preferred skills: 1/1 matched (100%)")
	assert.Contains(t, result.Explanation, "exact")
}
