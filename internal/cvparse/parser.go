// Package cvparse extracts a structured candidate profile from raw CV text.
// Extraction is heuristic-first: regex and dictionary passes always run, and
// an optional LLM pass refines the result when an API key is configured.
package cvparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/logiscareer/candidate-engine/internal/skills"
	"github.com/logiscareer/candidate-engine/internal/types"
)

// Extracted is the intermediate parse result before candidate mapping.
// Fields left empty are filled with documented defaults by MapToCandidate.
type Extracted struct {
	FullName             string
	Email                string
	MobileNumber         string
	LinkedInURL          string
	Nationality          string
	CurrentCountry       string
	CurrentCity          string
	VisaStatus           string
	TotalExperienceYears float64
	ExpectedSalary       int
	Currency             string
	Skills               []string
	EducationLevel       string
	EducationDetails     []types.EducationEntry
	LanguagesKnown       []string
	EmploymentSummary    string
	EmploymentHistory    []types.EmploymentEntry
	ExtractionConfidence float64 // 0-1, how much of the CV the heuristics recovered
	ParsingWarnings      []string
	RawText              string
}

var (
	emailRe    = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe    = regexp.MustCompile(`(?:\+?\d[\d\s\-()]{7,}\d)`)
	linkedinRe = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/in/[\w\-]+/?`)
	yearsRe    = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*\+?\s*years?\s+(?:of\s+)?experience`)
	salaryRe   = regexp.MustCompile(`(?i)(?:expected|desired)\s+salary\s*:?\s*(?:(AED|USD|SAR|QAR|KWD|OMR|BHD)\s*)?([\d,]+)`)
)

// sectionHeaders split a CV into named sections. Matched case-insensitively
// at line starts.
var sectionHeaders = []string{
	"skills", "technical skills", "core competencies",
	"education", "qualifications",
	"experience", "work experience", "employment history", "professional experience",
	"languages",
	"summary", "profile", "objective",
}

// educationKeywords, scanned in declared order, resolve the highest
// education level mentioned anywhere in the text.
var educationKeywords = []string{
	"phd", "doctorate", "masters", "master", "bachelors", "bachelor",
	"diploma", "high school",
}

var knownLanguages = []string{
	"english", "arabic", "hindi", "urdu", "french", "tagalog",
	"malayalam", "tamil", "spanish", "german", "mandarin",
}

// Parser extracts structured fields from CV text using the shared skill
// taxonomy for dictionary lookups. Open-ended employment stints are
// measured against the injected clock.
type Parser struct {
	taxonomy *skills.Taxonomy
	now      func() time.Time
}

// NewParser creates a parser over the given taxonomy.
func NewParser(taxonomy *skills.Taxonomy) *Parser {
	return NewParserAt(taxonomy, time.Now)
}

// NewParserAt creates a parser with a fixed clock for reproducible
// duration math.
func NewParserAt(taxonomy *skills.Taxonomy, now func() time.Time) *Parser {
	return &Parser{taxonomy: taxonomy, now: now}
}

// Parse runs the heuristic extraction passes over raw CV text.
func (p *Parser) Parse(text string) *Extracted {
	out := &Extracted{RawText: text}
	lower := strings.ToLower(text)

	if m := emailRe.FindString(text); m != "" {
		out.Email = m
	}
	if m := phoneRe.FindString(text); m != "" {
		out.MobileNumber = strings.TrimSpace(m)
	}
	out.LinkedInURL = linkedinRe.FindString(text)
	if m := yearsRe.FindStringSubmatch(text); len(m) == 2 {
		if years, err := strconv.ParseFloat(m[1], 64); err == nil {
			out.TotalExperienceYears = years
		}
	}
	if m := salaryRe.FindStringSubmatch(text); len(m) == 3 {
		if amount, err := strconv.Atoi(strings.ReplaceAll(m[2], ",", "")); err == nil {
			out.ExpectedSalary = amount
			out.Currency = strings.ToUpper(m[1])
		}
	}

	out.FullName = firstNonEmptyLine(text)
	out.Skills = p.extractSkills(lower)
	out.EducationLevel = extractEducation(lower)
	out.LanguagesKnown = extractLanguages(lower)
	out.EmploymentSummary = extractSection(text, "experience", "work experience",
		"employment history", "professional experience")
	out.EmploymentHistory = extractEmployment(out.EmploymentSummary, p.now())
	out.EducationDetails = extractEducationEntries(extractSection(text, "education", "qualifications"))

	// A stated years figure wins; otherwise sum the dated stints.
	if out.TotalExperienceYears == 0 {
		out.TotalExperienceYears = totalYears(out.EmploymentHistory)
	}

	scoreExtraction(out)
	return out
}

// scoreExtraction grades how much of the CV the heuristics recovered and
// records warnings for the gaps that matter downstream.
func scoreExtraction(out *Extracted) {
	score := 0
	if out.FullName != "" {
		score += 15
	} else {
		out.ParsingWarnings = append(out.ParsingWarnings, "could not identify candidate name")
	}
	if out.Email != "" {
		score += 10
	} else {
		out.ParsingWarnings = append(out.ParsingWarnings, "no email address found")
	}
	if out.MobileNumber != "" {
		score += 5
	}
	if n := len(out.Skills); n > 0 {
		score += min(25, 3*n)
	} else {
		out.ParsingWarnings = append(out.ParsingWarnings, "no recognizable skills found")
	}
	if n := len(out.EmploymentHistory); n > 0 {
		score += min(25, 8*n)
	} else {
		out.ParsingWarnings = append(out.ParsingWarnings, "no dated employment entries found")
	}
	if n := len(out.EducationDetails); n > 0 {
		score += min(15, 8*n)
	}
	if out.TotalExperienceYears > 0 {
		score += 5
	}
	out.ExtractionConfidence = float64(score) / 100
}

// extractSkills runs a dictionary pass over the whole text: every taxonomy
// alias found is recorded under its canonical form, deduplicated.
func (p *Parser) extractSkills(lowerText string) []string {
	seen := make(map[string]bool)
	var found []string
	for _, alias := range p.taxonomy.KnownSkills() {
		if !containsTerm(lowerText, alias) {
			continue
		}
		canonical := p.taxonomy.Canonical(alias)
		if !seen[canonical] {
			seen[canonical] = true
			found = append(found, canonical)
		}
	}
	return found
}

// SkillMatch pairs a skill mention found in the text with its canonical
// taxonomy form.
type SkillMatch struct {
	Skill     string `json:"skill"`
	Canonical string `json:"normalized_skill"`
}

// ExtractSkillDetails runs the dictionary pass keeping the first alias
// matched per canonical skill, in taxonomy order.
func (p *Parser) ExtractSkillDetails(text string) []SkillMatch {
	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	var found []SkillMatch
	for _, alias := range p.taxonomy.KnownSkills() {
		if !containsTerm(lower, alias) {
			continue
		}
		canonical := p.taxonomy.Canonical(alias)
		if !seen[canonical] {
			seen[canonical] = true
			found = append(found, SkillMatch{Skill: alias, Canonical: canonical})
		}
	}
	return found
}

func extractEducation(lowerText string) string {
	for _, kw := range educationKeywords {
		if strings.Contains(lowerText, kw) {
			return kw
		}
	}
	return ""
}

func extractLanguages(lowerText string) []string {
	var found []string
	for _, lang := range knownLanguages {
		if containsTerm(lowerText, lang) {
			found = append(found, lang)
		}
	}
	return found
}

// extractSection returns the text between one of the given headers and the
// next recognized header, or empty when no header matches.
func extractSection(text string, headers ...string) string {
	lines := strings.Split(text, "\n")
	start := -1
	for i, line := range lines {
		if isHeader(line, headers) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return ""
	}

	end := len(lines)
	for i := start; i < len(lines); i++ {
		if isHeader(lines[i], sectionHeaders) {
			end = i
			break
		}
	}
	return strings.TrimSpace(strings.Join(lines[start:end], "\n"))
}

func isHeader(line string, headers []string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(strings.TrimRight(line, ":")))
	for _, h := range headers {
		if trimmed == h {
			return true
		}
	}
	return false
}

func firstNonEmptyLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		// Headers and contact lines are not names.
		if emailRe.MatchString(trimmed) || isHeader(trimmed, sectionHeaders) {
			continue
		}
		return trimmed
	}
	return ""
}

// containsTerm reports a whole-word occurrence, so "go" does not match
// inside "google".
func containsTerm(text, term string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], term)
		if i < 0 {
			return false
		}
		i += idx
		before := i == 0 || !isWordChar(text[i-1])
		afterIdx := i + len(term)
		after := afterIdx >= len(text) || !isWordChar(text[afterIdx])
		if before && after {
			return true
		}
		idx = i + len(term)
		if idx >= len(text) {
			return false
		}
	}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
