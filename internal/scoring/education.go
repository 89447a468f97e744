package scoring

import (
	"fmt"
	"strings"
)

// educationScores maps education keywords to continuous scores. Scanned in
// declared order so "masters" wins over "master" and so on.
var educationScores = []struct {
	keyword string
	score   int
}{
	{"phd", 100},
	{"doctorate", 100},
	{"masters", 90},
	{"master", 90},
	{"bachelors", 80},
	{"bachelor", 80},
	{"diploma", 70},
	{"high school", 65},
}

// EducationDefaultScore is the neutral score for missing or unrecognized education.
const EducationDefaultScore = 75

// ScoreEducation scores the candidate's education level as a supporting
// signal. The hard education requirement is handled by the gate.
func ScoreEducation(educationLevel string) Result {
	if strings.TrimSpace(educationLevel) == "" {
		return Result{
			Score:       EducationDefaultScore,
			Explanation: "Education information not provided; neutral impact applied",
		}
	}

	normalized := strings.ToLower(strings.TrimSpace(educationLevel))
	for _, entry := range educationScores {
		if strings.Contains(normalized, entry.keyword) {
			return Result{
				Score:       entry.score,
				Explanation: fmt.Sprintf("Education level identified as '%s'", educationLevel),
			}
		}
	}

	return Result{
		Score:       EducationDefaultScore,
		Explanation: fmt.Sprintf("Education level '%s' treated as neutral", educationLevel),
	}
}
