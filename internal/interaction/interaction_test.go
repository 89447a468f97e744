package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logiscareer/candidate-engine/internal/types"
)

func intPtr(v int) *int { return &v }

func findInteraction(list []types.FeatureInteraction, id string) *types.FeatureInteraction {
	for i := range list {
		if list[i].InteractionID == id {
			return &list[i]
		}
	}
	return nil
}

func TestSkillsCompensateExperience(t *testing.T) {
	in := Inputs{
		SkillsScore:              95,
		ExperienceScore:          65,
		CandidateExperienceYears: 2.5,
		JobMinExperienceYears:    3,
	}

	fi := findInteraction(Detect(in), "SKILLS_COMP_EXP")
	require.NotNil(t, fi)
	assert.Equal(t, KindCompensation, fi.Kind)
	assert.Equal(t, 3.0, fi.Impact)

	// Too far below the minimum requirement: no compensation.
	in.CandidateExperienceYears = 1
	assert.Nil(t, findInteraction(Detect(in), "SKILLS_COMP_EXP"))
}

func TestExperienceCompensatesSkills(t *testing.T) {
	in := Inputs{
		SkillsScore:              70,
		ExperienceScore:          95,
		CandidateExperienceYears: 9,
		JobMaxExperienceYears:    intPtr(8),
	}

	fi := findInteraction(Detect(in), "EXP_COMP_SKILLS")
	require.NotNil(t, fi)
	assert.Equal(t, 2.0, fi.Impact)

	// Skills too low to be compensable.
	in.SkillsScore = 50
	assert.Nil(t, findInteraction(Detect(in), "EXP_COMP_SKILLS"))

	// No experience ceiling on the job.
	in.SkillsScore = 70
	in.JobMaxExperienceYears = nil
	assert.Nil(t, findInteraction(Detect(in), "EXP_COMP_SKILLS"))
}

func TestSalarySkillsTradeoff(t *testing.T) {
	in := Inputs{
		SkillsScore:    90,
		ExpectedSalary: 9000,
		SalaryMax:      12000,
	}

	fi := findInteraction(Detect(in), "SALARY_SKILLS_TRADEOFF")
	require.NotNil(t, fi)
	assert.Equal(t, KindAmplification, fi.Kind)
	assert.Equal(t, 4.0, fi.Impact)

	// Expectation above 90% of budget: no tradeoff.
	in.ExpectedSalary = 11500
	assert.Nil(t, findInteraction(Detect(in), "SALARY_SKILLS_TRADEOFF"))
}

func TestCareerChangerFlagsWithoutImpact(t *testing.T) {
	in := Inputs{
		SkillsScore:   80,
		SemanticScore: 45,
	}

	fi := findInteraction(Detect(in), "CAREER_CHANGER")
	require.NotNil(t, fi)
	assert.Equal(t, KindPatternDetection, fi.Kind)
	assert.Zero(t, fi.Impact)

	in.SemanticScore = 70
	assert.Nil(t, findInteraction(Detect(in), "CAREER_CHANGER"))
}

func TestPerfectCandidateAmplification(t *testing.T) {
	in := Inputs{
		SkillsScore:     90,
		ExperienceScore: 88,
		SemanticScore:   85,
		DomainScore:     95,
	}

	fi := findInteraction(Detect(in), "PERFECT_CANDIDATE_AMP")
	require.NotNil(t, fi)
	assert.Equal(t, 5.0, fi.Impact)

	in.SemanticScore = 84
	assert.Nil(t, findInteraction(Detect(in), "PERFECT_CANDIDATE_AMP"))
}

func TestTotalImpactSums(t *testing.T) {
	in := Inputs{
		SkillsScore:              95,
		ExperienceScore:          65,
		CandidateExperienceYears: 3,
		JobMinExperienceYears:    3,
		ExpectedSalary:           9000,
		SalaryMax:                12000,
	}

	interactions := Detect(in)
	require.NotNil(t, findInteraction(interactions, "SKILLS_COMP_EXP"))
	require.NotNil(t, findInteraction(interactions, "SALARY_SKILLS_TRADEOFF"))
	assert.Equal(t, 7.0, TotalImpact(interactions))
}

func TestDetect_NothingFires(t *testing.T) {
	assert.Empty(t, Detect(Inputs{
		SkillsScore:     70,
		ExperienceScore: 75,
		SemanticScore:   70,
		DomainScore:     75,
	}))
}
