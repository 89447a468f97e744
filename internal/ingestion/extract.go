package ingestion

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/logiscareer/candidate-engine/internal/skills"
	"github.com/logiscareer/candidate-engine/internal/types"
)

// ErrContentExtractionFailed is returned when the HTML cannot be parsed.
var ErrContentExtractionFailed = fmt.Errorf("content extraction failed")

// noiseSelectors are stripped before text extraction.
var noiseSelectors = []string{
	"script", "style", "nav", "footer", "header", "aside",
	"noscript", "iframe", "form", "svg",
}

// contentSelectors are tried in order; the first non-trivial match wins.
// The body fallback always matches.
var contentSelectors = []string{
	"main", "article", "[class*=job-description]", "[class*=description]",
	"[id*=job]", "body",
}

var (
	expRangeRe = regexp.MustCompile(`(?i)(\d+)\s*(?:-|to)\s*(\d+)\s*years?`)
	expMinRe   = regexp.MustCompile(`(?i)(?:minimum|at least|min\.?)\s*(\d+)\s*\+?\s*years?`)
	salaryRe   = regexp.MustCompile(`(?i)(AED|USD|SAR|QAR|KWD|OMR|BHD)?\s*([\d,]{4,})\s*(?:-|to)\s*(?:AED|USD|SAR|QAR|KWD|OMR|BHD)?\s*([\d,]{4,})`)
)

// ExtractText pulls the main text content out of a job posting page,
// stripping navigation and boilerplate.
func ExtractText(html string) (title, text string, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	title = strings.TrimSpace(doc.Find("title").First().Text())
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		title = h1
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	for _, sel := range contentSelectors {
		candidate := collapseWhitespace(doc.Find(sel).First().Text())
		if len(candidate) > 200 || sel == "body" {
			text = candidate
			break
		}
	}

	return title, text, nil
}

// ExtractJob builds a partially populated job record from posting text.
// Identity, country, and salary fields the text does not state are left
// empty for the operator to fill in; the output is a draft, not an
// evaluatable job.
func ExtractJob(taxonomy *skills.Taxonomy, title, text string) *types.Job {
	job := &types.Job{
		Title:          title,
		JobDescription: text,
	}

	lower := strings.ToLower(text)

	if m := expRangeRe.FindStringSubmatch(text); len(m) == 3 {
		if minY, err := strconv.Atoi(m[1]); err == nil {
			job.MinExperienceYears = minY
		}
		if maxY, err := strconv.Atoi(m[2]); err == nil {
			job.MaxExperienceYears = &maxY
		}
	} else if m := expMinRe.FindStringSubmatch(text); len(m) == 2 {
		if minY, err := strconv.Atoi(m[1]); err == nil {
			job.MinExperienceYears = minY
		}
	}

	if m := salaryRe.FindStringSubmatch(text); len(m) == 4 {
		low, err1 := strconv.Atoi(strings.ReplaceAll(m[2], ",", ""))
		high, err2 := strconv.Atoi(strings.ReplaceAll(m[3], ",", ""))
		if err1 == nil && err2 == nil && low < high {
			job.SalaryMin = low
			job.SalaryMax = high
			job.Currency = strings.ToUpper(m[1])
		}
	}

	seen := make(map[string]bool)
	for _, alias := range taxonomy.KnownSkills() {
		if !strings.Contains(lower, alias) {
			continue
		}
		canonical := taxonomy.Canonical(alias)
		if !seen[canonical] {
			seen[canonical] = true
			job.RequiredSkills = append(job.RequiredSkills, canonical)
		}
	}

	return job
}

func collapseWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	var out []string
	for _, line := range lines {
		trimmed := strings.Join(strings.Fields(line), " ")
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, "\n")
}
