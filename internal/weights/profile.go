// Package weights selects job-aware section weight profiles for score
// aggregation. Profiles always renormalize to sum 1.0.
package weights

import (
	"strings"

	"github.com/logiscareer/candidate-engine/internal/types"
)

// JobLevel is an inferred job seniority level.
type JobLevel string

// Job seniority levels. DetermineJobLevel always resolves to one of these;
// jobs with no title keywords and no experience requirement fall back to
// entry.
const (
	LevelEntry     JobLevel = "entry"
	LevelMid       JobLevel = "mid"
	LevelSenior    JobLevel = "senior"
	LevelExecutive JobLevel = "executive"
)

// Section names carrying aggregation weight.
const (
	SectionSkills     = "skills"
	SectionExperience = "experience"
	SectionSemantic   = "semantic"
	SectionDomain     = "domain"
)

// Title keyword lists, checked in precedence order executive > senior > entry.
var (
	executiveKeywords = []string{"director", "vp", "vice president", "chief", "ceo", "coo", "cfo", "head of"}
	seniorKeywords    = []string{"senior", "sr.", "sr ", "lead", "principal", "staff", "expert"}
	entryKeywords     = []string{"junior", "jr.", "jr ", "entry", "trainee", "intern", "graduate", "associate"}
)

// weightProfiles holds the fixed per-level weight tables.
var weightProfiles = map[JobLevel]map[string]float64{
	LevelEntry: {
		SectionSkills:     0.30,
		SectionExperience: 0.10,
		SectionSemantic:   0.40,
		SectionDomain:     0.20,
	},
	LevelMid: {
		SectionSkills:     0.25,
		SectionExperience: 0.20,
		SectionSemantic:   0.30,
		SectionDomain:     0.25,
	},
	LevelSenior: {
		SectionSkills:     0.20,
		SectionExperience: 0.25,
		SectionSemantic:   0.25,
		SectionDomain:     0.30,
	},
	LevelExecutive: {
		SectionSkills:     0.15,
		SectionExperience: 0.30,
		SectionSemantic:   0.20,
		SectionDomain:     0.35,
	},
}

// Bounded adjustment caps and triggers.
const (
	skillsBoostFactor    = 1.15
	semanticBoostFactor  = 1.10
	boostCap             = 0.50
	manySkillsThreshold  = 10
	longProfileThreshold = 200
)

// DetermineJobLevel infers job seniority from title keywords, falling back
// to experience-requirement thresholds when the title is inconclusive.
func DetermineJobLevel(job *types.Job) JobLevel {
	title := strings.ToLower(job.Title)

	for _, kw := range executiveKeywords {
		if strings.Contains(title, kw) {
			return LevelExecutive
		}
	}
	for _, kw := range seniorKeywords {
		if strings.Contains(title, kw) {
			return LevelSenior
		}
	}
	for _, kw := range entryKeywords {
		if strings.Contains(title, kw) {
			return LevelEntry
		}
	}

	switch {
	case job.MinExperienceYears >= 10:
		return LevelExecutive
	case job.MinExperienceYears >= 5:
		return LevelSenior
	case job.MinExperienceYears >= 2:
		return LevelMid
	default:
		return LevelEntry
	}
}

// SelectProfile returns the normalized, job-adjusted weight vector and the
// name of the profile it came from.
func SelectProfile(job *types.Job) (map[string]float64, string) {
	level := DetermineJobLevel(job)

	selected := make(map[string]float64, len(weightProfiles[level]))
	for section, weight := range weightProfiles[level] {
		selected[section] = weight
	}
	normalizeWeights(selected)

	// Jobs with long required-skill lists lean harder on skills; jobs with
	// a detailed desired-profile text lean harder on semantic fit.
	if len(job.RequiredSkills) > manySkillsThreshold {
		selected[SectionSkills] = capAt(selected[SectionSkills]*skillsBoostFactor, boostCap)
	}
	if len(job.DesiredCandidateProfile) > longProfileThreshold {
		selected[SectionSemantic] = capAt(selected[SectionSemantic]*semanticBoostFactor, boostCap)
	}
	normalizeWeights(selected)

	return selected, string(level)
}

func normalizeWeights(weights map[string]float64) {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return
	}
	for section := range weights {
		weights[section] /= total
	}
}

func capAt(v, cap float64) float64 {
	if v > cap {
		return cap
	}
	return v
}
