package cvparse

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/logiscareer/candidate-engine/internal/llm"
)

const refinePromptTemplate = `Extract the following fields from this CV text as JSON:
{
  "full_name": string,
  "nationality": string,
  "current_country": string,
  "current_city": string,
  "visa_status": string,
  "total_experience_years": number,
  "expected_salary": number,
  "currency": string,
  "skills": [string],
  "education_level": string,
  "languages_known": [string]
}
Use empty strings, 0, or empty arrays for fields not present in the CV.
Do not invent values.

CV text:
%s`

// refined mirrors the JSON shape the extraction prompt requests.
type refined struct {
	FullName             string   `json:"full_name"`
	Nationality          string   `json:"nationality"`
	CurrentCountry       string   `json:"current_country"`
	CurrentCity          string   `json:"current_city"`
	VisaStatus           string   `json:"visa_status"`
	TotalExperienceYears float64  `json:"total_experience_years"`
	ExpectedSalary       float64  `json:"expected_salary"`
	Currency             string   `json:"currency"`
	Skills               []string `json:"skills"`
	EducationLevel       string   `json:"education_level"`
	LanguagesKnown       []string `json:"languages_known"`
}

// Refine overlays LLM-extracted fields onto a heuristic parse result.
// Heuristic values win when the LLM leaves a field empty; the heuristic
// skill list is merged with (not replaced by) the LLM's. Any LLM failure
// leaves the heuristic result untouched.
func Refine(ctx context.Context, client llm.Client, extracted *Extracted) error {
	if client == nil {
		return nil
	}

	raw, err := client.GenerateJSON(ctx, fmt.Sprintf(refinePromptTemplate, extracted.RawText))
	if err != nil {
		return fmt.Errorf("cv refinement failed: %w", err)
	}

	var r refined
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return fmt.Errorf("cv refinement returned invalid JSON: %w", err)
	}

	overlay(&extracted.FullName, r.FullName)
	overlay(&extracted.Nationality, r.Nationality)
	overlay(&extracted.CurrentCountry, r.CurrentCountry)
	overlay(&extracted.CurrentCity, r.CurrentCity)
	overlay(&extracted.VisaStatus, r.VisaStatus)
	overlay(&extracted.EducationLevel, r.EducationLevel)
	overlay(&extracted.Currency, r.Currency)

	if extracted.TotalExperienceYears == 0 && r.TotalExperienceYears > 0 {
		extracted.TotalExperienceYears = r.TotalExperienceYears
	}
	if extracted.ExpectedSalary == 0 && r.ExpectedSalary > 0 {
		extracted.ExpectedSalary = int(r.ExpectedSalary)
	}

	extracted.Skills = mergeLists(extracted.Skills, r.Skills)
	extracted.LanguagesKnown = mergeLists(extracted.LanguagesKnown, r.LanguagesKnown)

	return nil
}

func overlay(dst *string, src string) {
	if *dst == "" && strings.TrimSpace(src) != "" {
		*dst = strings.TrimSpace(src)
	}
}

func mergeLists(base, extra []string) []string {
	seen := make(map[string]bool, len(base))
	out := append([]string(nil), base...)
	for _, s := range base {
		seen[strings.ToLower(s)] = true
	}
	for _, s := range extra {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, strings.TrimSpace(s))
	}
	return out
}
