package adjustment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logiscareer/candidate-engine/internal/types"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestCondition_Holds(t *testing.T) {
	features := &EvaluationFeatures{GCCExperienceYears: 3}

	tests := []struct {
		name string
		cond Condition
		want bool
	}{
		{"at_least met", Condition{Feature: FeatureGCCExperienceYears, Kind: CondAtLeast, Min: 3}, true},
		{"at_least unmet", Condition{Feature: FeatureGCCExperienceYears, Kind: CondAtLeast, Min: 3.5}, false},
		{"at_most met", Condition{Feature: FeatureGCCExperienceYears, Kind: CondAtMost, Max: 3}, true},
		{"less_than excludes boundary", Condition{Feature: FeatureGCCExperienceYears, Kind: CondLessThan, Max: 3}, false},
		{"range inclusive", Condition{Feature: FeatureGCCExperienceYears, Kind: CondRange, Min: 1, Max: 3}, true},
		{"range outside", Condition{Feature: FeatureGCCExperienceYears, Kind: CondRange, Min: 4, Max: 6}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cond.Holds(features))
		})
	}
}

func TestCondition_UnavailableSalaryPositionNeverHolds(t *testing.T) {
	features := &EvaluationFeatures{SalaryPosition: -1}
	cond := Condition{Feature: FeatureSalaryPosition, Kind: CondLessThan, Max: 0.45}
	assert.False(t, cond.Holds(features))
}

func TestGCCTiersAreExclusive(t *testing.T) {
	engine := NewEngine()

	// 3 years fires only the minor tier.
	_, records := engine.Apply(70, &EvaluationFeatures{GCCExperienceYears: 3, SalaryPosition: -1, YearsSinceGraduation: noGraduationSentinel})
	assert.Equal(t, []string{"GCC_EXP_BONUS"}, ruleIDs(records))

	// Fractional years just below the tier boundary stay in the minor tier.
	_, records = engine.Apply(70, &EvaluationFeatures{GCCExperienceYears: 4.9995, SalaryPosition: -1, YearsSinceGraduation: noGraduationSentinel})
	assert.Equal(t, []string{"GCC_EXP_BONUS"}, ruleIDs(records))

	// 5+ years fires only the major tier.
	_, records = engine.Apply(70, &EvaluationFeatures{GCCExperienceYears: 6, SalaryPosition: -1, YearsSinceGraduation: noGraduationSentinel})
	assert.Equal(t, []string{"GCC_EXP_MAJOR_BONUS"}, ruleIDs(records))

	// Exactly at the boundary only the major tier fires.
	_, records = engine.Apply(70, &EvaluationFeatures{GCCExperienceYears: 5, SalaryPosition: -1, YearsSinceGraduation: noGraduationSentinel})
	assert.Equal(t, []string{"GCC_EXP_MAJOR_BONUS"}, ruleIDs(records))
}

func TestApply_AllFiringRulesSum(t *testing.T) {
	engine := NewEngine()
	features := &EvaluationFeatures{
		GCCExperienceYears:     6,   // +8
		RequiredSkillMatchRate: 1.0, // +5
		SalaryPosition:         0.5, // +3 sweet spot
		YearsSinceGraduation:   2,   // +2 recent education
		HasCareerProgression:   true, // +3
	}

	adjusted, records := engine.Apply(70, features)

	assert.InDelta(t, 91.0, adjusted, 0.001)
	assert.Len(t, records, 5)
}

func TestApply_PriorityOrdersAuditTrail(t *testing.T) {
	engine := NewEngine()
	features := &EvaluationFeatures{
		GCCExperienceYears:     6,   // priority 11
		RequiredSkillMatchRate: 0.5, // CRITICAL_SKILL_GAP priority 20
		SalaryPosition:         -1,
		YearsSinceGraduation:   noGraduationSentinel,
	}

	_, records := engine.Apply(70, features)

	require.Len(t, records, 2)
	assert.Equal(t, "CRITICAL_SKILL_GAP", records[0].RuleID)
	assert.Equal(t, "GCC_EXP_MAJOR_BONUS", records[1].RuleID)
}

func TestApply_ClampsToRange(t *testing.T) {
	engine := NewEngine()

	low, _ := engine.Apply(2, &EvaluationFeatures{
		RequiredSkillMatchRate: 0.1, // -8
		SalaryPosition:         -1,
		YearsSinceGraduation:   noGraduationSentinel,
	})
	assert.Zero(t, low)

	high, _ := engine.Apply(98, &EvaluationFeatures{
		GCCExperienceYears:     6,
		RequiredSkillMatchRate: 1.0,
		SalaryPosition:         -1,
		YearsSinceGraduation:   noGraduationSentinel,
	})
	assert.Equal(t, 100.0, high)
}

func TestApply_JobHoppingReasonIncludesCounts(t *testing.T) {
	engine := NewEngine()
	features := &EvaluationFeatures{
		ShortStintJobs:       3,
		ShortStintSpanYears:  3.5,
		SalaryPosition:       -1,
		YearsSinceGraduation: noGraduationSentinel,
	}

	_, records := engine.Apply(70, features)

	require.Len(t, records, 1)
	assert.Equal(t, "JOB_HOPPING", records[0].RuleID)
	assert.Contains(t, records[0].Reason, "(3 jobs in 3.5 years)")
}

func TestApply_RecordsTriggeringFeatures(t *testing.T) {
	engine := NewEngine()
	_, records := engine.Apply(70, &EvaluationFeatures{
		GCCExperienceYears:   3,
		SalaryPosition:       -1,
		YearsSinceGraduation: noGraduationSentinel,
	})

	require.Len(t, records, 1)
	assert.Equal(t, 3.0, records[0].TriggeredBy["gcc_experience_years"])
}

func TestExtractFeatures(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	job := &types.Job{
		SalaryMin:          8000,
		SalaryMax:          12000,
		MaxExperienceYears: intPtr(8),
		Industry:           "Logistics",
	}
	candidate := &types.Candidate{
		GCCExperienceYears:   floatPtr(4),
		TotalExperienceYears: 10,
		ExpectedSalary:       10000,
		EducationDetails: []types.EducationEntry{
			{GraduationYear: 2016},
			{GraduationYear: 2023},
		},
		EmploymentHistory: []types.EmploymentEntry{
			{JobTitle: "Senior Logistics Manager", Industry: "Logistics", IsCurrent: true},
			{JobTitle: "Logistics Executive", Industry: "Logistics", DurationMonths: 18},
			{JobTitle: "Warehouse Clerk", Industry: "Retail", DurationMonths: 12},
		},
	}

	f := ExtractFeatures(job, candidate, 0.75, now)

	assert.Equal(t, 4.0, f.GCCExperienceYears)
	assert.Equal(t, 0.75, f.RequiredSkillMatchRate)
	assert.Equal(t, 2.0, f.ExperienceOverMaxYears)
	assert.InDelta(t, 0.5, f.SalaryPosition, 0.001)
	assert.Equal(t, 2.0, f.YearsSinceGraduation)
	// The current role is open-ended and excluded from stint counting.
	assert.Equal(t, 2, f.ShortStintJobs)
	assert.InDelta(t, 2.5, f.ShortStintSpanYears, 0.001)
	assert.True(t, f.HasCareerProgression)
	assert.Equal(t, 2, f.SameIndustryJobs)
}

func TestExtractFeatures_Defaults(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	f := ExtractFeatures(&types.Job{}, &types.Candidate{}, 0, now)

	assert.Zero(t, f.GCCExperienceYears)
	assert.Equal(t, -1.0, f.SalaryPosition)
	assert.Equal(t, float64(noGraduationSentinel), f.YearsSinceGraduation)
	assert.Zero(t, f.ShortStintJobs)
	assert.False(t, f.HasCareerProgression)
}

func TestExtractFeatures_SalaryAboveBandNotDerivable(t *testing.T) {
	now := time.Now()
	job := &types.Job{SalaryMin: 8000, SalaryMax: 12000}
	candidate := &types.Candidate{ExpectedSalary: 15000}

	f := ExtractFeatures(job, candidate, 0, now)
	assert.Equal(t, -1.0, f.SalaryPosition)
}

func TestDetectProgression(t *testing.T) {
	// Most-recent-first ordering: a senior title now, plain title earliest.
	progressed := []types.EmploymentEntry{
		{JobTitle: "Head of Operations"},
		{JobTitle: "Operations Manager"},
		{JobTitle: "Operations Executive"},
	}
	assert.True(t, detectProgression(progressed))

	flat := []types.EmploymentEntry{
		{JobTitle: "Operations Executive"},
		{JobTitle: "Operations Executive"},
	}
	assert.False(t, detectProgression(flat))

	assert.False(t, detectProgression([]types.EmploymentEntry{{JobTitle: "Manager"}}))
}

func ruleIDs(records []types.AdjustmentRecord) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.RuleID)
	}
	return ids
}
