package adjustment

import (
	"strings"
	"time"

	"github.com/logiscareer/candidate-engine/internal/types"
)

// noGraduationSentinel marks candidates with no usable graduation year so
// recency conditions never fire for them.
const noGraduationSentinel = 999

// progressionKeywords signal upward title movement in employment history.
var progressionKeywords = []string{"senior", "lead", "principal", "director", "manager", "head"}

// EvaluationFeatures is the strongly typed feature snapshot derived from a
// job/candidate pair. Rule conditions read from it by name via Value.
type EvaluationFeatures struct {
	GCCExperienceYears     float64
	RequiredSkillMatchRate float64 // 0-1
	ExperienceOverMaxYears float64 // 0 when no max or not over
	SalaryPosition         float64 // 0-1 within band, -1 when not derivable
	YearsSinceGraduation   float64 // noGraduationSentinel when unknown
	ShortStintJobs         int     // jobs held under 24 months
	ShortStintSpanYears    float64 // combined span of those short stints
	HasCareerProgression   bool
	SameIndustryJobs       int // consecutive recent jobs in the job's industry
}

// Value resolves a feature by name. Booleans map to 0/1.
func (f *EvaluationFeatures) Value(name FeatureName) (float64, bool) {
	switch name {
	case FeatureGCCExperienceYears:
		return f.GCCExperienceYears, true
	case FeatureRequiredSkillMatchRate:
		return f.RequiredSkillMatchRate, true
	case FeatureExperienceOverMax:
		return f.ExperienceOverMaxYears, true
	case FeatureSalaryPosition:
		if f.SalaryPosition < 0 {
			return 0, false
		}
		return f.SalaryPosition, true
	case FeatureYearsSinceGraduation:
		return f.YearsSinceGraduation, true
	case FeatureShortStintJobs:
		return float64(f.ShortStintJobs), true
	case FeatureCareerProgression:
		return boolToFloat(f.HasCareerProgression), true
	case FeatureSameIndustryJobs:
		return float64(f.SameIndustryJobs), true
	default:
		return 0, false
	}
}

// Snapshot returns the feature values keyed by name, recorded on every
// adjustment so results can be audited without re-deriving inputs.
func (f *EvaluationFeatures) Snapshot(names []FeatureName) map[string]float64 {
	out := make(map[string]float64, len(names))
	for _, name := range names {
		if v, ok := f.Value(name); ok {
			out[string(name)] = v
		}
	}
	return out
}

// ExtractFeatures derives the full feature snapshot. The required-skill
// match rate comes from the skill matcher rather than being re-derived
// here; now anchors graduation recency so evaluations stay reproducible.
func ExtractFeatures(job *types.Job, candidate *types.Candidate, requiredSkillMatchRate float64, now time.Time) *EvaluationFeatures {
	f := &EvaluationFeatures{
		GCCExperienceYears:     candidate.GCCExperience(),
		RequiredSkillMatchRate: requiredSkillMatchRate,
		SalaryPosition:         -1,
		YearsSinceGraduation:   noGraduationSentinel,
	}

	if job.MaxExperienceYears != nil {
		if over := candidate.TotalExperienceYears - float64(*job.MaxExperienceYears); over > 0 {
			f.ExperienceOverMaxYears = over
		}
	}

	if job.SalaryMax > job.SalaryMin && candidate.ExpectedSalary > 0 {
		pos := float64(candidate.ExpectedSalary-job.SalaryMin) / float64(job.SalaryMax-job.SalaryMin)
		if pos >= 0 && pos <= 1 {
			f.SalaryPosition = pos
		}
	}

	if year := latestGraduationYear(candidate.EducationDetails); year > 0 {
		if since := float64(now.Year() - year); since >= 0 {
			f.YearsSinceGraduation = since
		}
	}

	f.ShortStintJobs, f.ShortStintSpanYears = shortStints(candidate.EmploymentHistory)
	f.HasCareerProgression = detectProgression(candidate.EmploymentHistory)
	f.SameIndustryJobs = consecutiveIndustryJobs(candidate.EmploymentHistory, job.Industry)

	return f
}

func latestGraduationYear(entries []types.EducationEntry) int {
	latest := 0
	for _, e := range entries {
		if e.GraduationYear > latest {
			latest = e.GraduationYear
		}
	}
	return latest
}

// shortStints counts jobs held under 24 months and the total span they
// cover. Entries without a known duration are skipped; the current job is
// excluded since its stint is still open-ended.
func shortStints(history []types.EmploymentEntry) (int, float64) {
	count := 0
	months := 0
	for _, e := range history {
		if e.IsCurrent || e.DurationMonths <= 0 {
			continue
		}
		if e.DurationMonths < 24 {
			count++
			months += e.DurationMonths
		}
	}
	return count, float64(months) / 12
}

// detectProgression reports whether a later role carries a seniority
// keyword that an earlier role lacks. History is assumed most-recent-first,
// the order the CV parser emits.
func detectProgression(history []types.EmploymentEntry) bool {
	if len(history) < 2 {
		return false
	}

	newest := titleRank(history[0].JobTitle)
	oldest := titleRank(history[len(history)-1].JobTitle)
	return newest > oldest
}

func titleRank(title string) int {
	lower := strings.ToLower(title)
	for i := len(progressionKeywords) - 1; i >= 0; i-- {
		if strings.Contains(lower, progressionKeywords[i]) {
			return i + 1
		}
	}
	return 0
}

// consecutiveIndustryJobs counts how many of the most recent jobs, in an
// unbroken run, share the target industry.
func consecutiveIndustryJobs(history []types.EmploymentEntry, industry string) int {
	target := strings.ToLower(strings.TrimSpace(industry))
	if target == "" {
		return 0
	}

	count := 0
	for _, e := range history {
		if strings.ToLower(strings.TrimSpace(e.Industry)) != target {
			break
		}
		count++
	}
	return count
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
