package cvparse

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/logiscareer/candidate-engine/internal/types"
)

// monthsByName resolves month-name date tokens, short or long form.
var monthsByName = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "sept": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

// Employment date ranges come in three shapes: "Jan 2020 - Dec 2023",
// "01/2020 - 12/2023", and "2020 - 2023". The end side may read Present
// or Current for an open-ended stint.
var (
	monthNameRangeRe = regexp.MustCompile(`(?i)\b([A-Za-z]{3,9})\.?\s+(\d{4})\s*(?:-|–|to)\s*(?:([A-Za-z]{3,9})\.?\s+(\d{4})|(present|current))`)
	numericRangeRe   = regexp.MustCompile(`(?i)\b(\d{1,2})/(\d{4})\s*(?:-|–|to)\s*(?:(\d{1,2})/(\d{4})|(present|current))`)
	yearRangeRe      = regexp.MustCompile(`(?i)\b(\d{4})\s*(?:-|–|to)\s*(?:(\d{4})|(present|current))`)
	yearRe           = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

var fieldsOfStudy = []string{
	"supply chain", "business administration", "logistics", "commerce",
	"computer science", "information technology", "engineering",
	"management", "economics", "finance", "operations",
}

var universityKeywords = []string{
	"university", "college", "institute", "school", "academy", "polytechnic",
}

// dateToken is one side of a parsed employment date range.
type dateToken struct {
	year    int
	month   int // 0 when the source format carries no month
	current bool
}

// parseDateRange tries the three supported range shapes in order and
// returns the matched text so callers can strip it from the line.
func parseDateRange(line string) (dateToken, dateToken, string, bool) {
	if m := monthNameRangeRe.FindStringSubmatch(line); m != nil {
		if startMonth, ok := monthsByName[strings.ToLower(m[1])]; ok {
			start := dateToken{year: atoi(m[2]), month: startMonth}
			var end dateToken
			switch {
			case m[5] != "":
				end = dateToken{current: true}
			default:
				end = dateToken{year: atoi(m[4]), month: monthsByName[strings.ToLower(m[3])]}
			}
			return start, end, m[0], true
		}
	}
	if m := numericRangeRe.FindStringSubmatch(line); m != nil {
		start := dateToken{year: atoi(m[2]), month: atoi(m[1])}
		var end dateToken
		if m[5] != "" {
			end = dateToken{current: true}
		} else {
			end = dateToken{year: atoi(m[4]), month: atoi(m[3])}
		}
		return start, end, m[0], true
	}
	if m := yearRangeRe.FindStringSubmatch(line); m != nil {
		start := dateToken{year: atoi(m[1])}
		var end dateToken
		if m[3] != "" {
			end = dateToken{current: true}
		} else {
			end = dateToken{year: atoi(m[2])}
		}
		return start, end, m[0], true
	}
	return dateToken{}, dateToken{}, "", false
}

// durationMonths measures a stint. A missing start month counts from
// January, an open-ended stint runs to now, and a known end year without
// a month runs through December.
func durationMonths(start, end dateToken, now time.Time) int {
	startMonth := start.month
	if startMonth == 0 {
		startMonth = 1
	}
	endYear, endMonth := end.year, end.month
	if end.current {
		endYear, endMonth = now.Year(), int(now.Month())
	} else if endMonth == 0 {
		endMonth = 12
	}
	months := (endYear-start.year)*12 + (endMonth - startMonth)
	if months < 0 {
		return 0
	}
	return months
}

// extractEmployment parses dated entries out of the experience section.
// A date range anchors each entry; the role header is whatever remains on
// that line, or the preceding line, split on " at ", a pipe, or a comma.
// Bulleted lines accumulate into the entry's responsibilities. Entries
// come out in CV order, most recent first.
func extractEmployment(section string, now time.Time) []types.EmploymentEntry {
	var entries []types.EmploymentEntry
	var current *types.EmploymentEntry
	var responsibilities []string
	prevHeader := ""

	flush := func() {
		if current != nil {
			current.Responsibilities = strings.Join(responsibilities, "; ")
			entries = append(entries, *current)
		}
		current = nil
		responsibilities = nil
	}

	for _, line := range strings.Split(section, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}

		if start, end, matched, ok := parseDateRange(stripped); ok {
			flush()
			header := strings.Trim(strings.Replace(stripped, matched, "", 1), " \t|,()-–")
			if header == "" {
				header = prevHeader
			}
			title, company := splitTitleCompany(header)
			entry := types.EmploymentEntry{
				JobTitle:       title,
				CompanyName:    company,
				StartDate:      formatStartDate(start),
				EndDate:        formatEndDate(end),
				DurationMonths: durationMonths(start, end, now),
				IsCurrent:      end.current,
			}
			current = &entry
			prevHeader = ""
			continue
		}

		if isBullet(stripped) {
			if current != nil {
				responsibilities = append(responsibilities, strings.TrimLeft(stripped, "-•* \t"))
			}
			continue
		}

		prevHeader = stripped
	}
	flush()
	return entries
}

// splitTitleCompany splits a role header into title and company, trying
// " at " first, then a pipe, then a comma.
func splitTitleCompany(header string) (string, string) {
	lower := strings.ToLower(header)
	for _, sep := range []string{" at ", "|", ","} {
		if idx := strings.Index(lower, sep); idx >= 0 {
			title := strings.TrimSpace(header[:idx])
			company := strings.TrimSpace(header[idx+len(sep):])
			if title != "" && company != "" {
				return title, company
			}
		}
	}
	return strings.TrimSpace(header), ""
}

func formatStartDate(d dateToken) string {
	month := d.month
	if month == 0 {
		month = 1
	}
	return fmt.Sprintf("%04d-%02d", d.year, month)
}

func formatEndDate(d dateToken) string {
	if d.current {
		return "Present"
	}
	month := d.month
	if month == 0 {
		month = 12
	}
	return fmt.Sprintf("%04d-%02d", d.year, month)
}

func isBullet(line string) bool {
	return strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") || strings.HasPrefix(line, "*")
}

// extractEducationEntries walks the education section line by line: a
// degree keyword opens an entry, and following lines can attach the
// institution or a graduation year.
func extractEducationEntries(section string) []types.EducationEntry {
	var entries []types.EducationEntry
	var current *types.EducationEntry

	flush := func() {
		if current != nil {
			entries = append(entries, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(section, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}
		lower := strings.ToLower(stripped)

		if level := degreeLevel(lower); level != "" {
			flush()
			current = &types.EducationEntry{EducationLevel: level}
			for _, field := range fieldsOfStudy {
				if strings.Contains(lower, field) {
					current.FieldOfStudy = titleCase(field)
					break
				}
			}
			for _, part := range strings.Split(stripped, ",") {
				p := strings.TrimSpace(part)
				if containsAny(strings.ToLower(p), universityKeywords) {
					current.University = p
					break
				}
			}
			if m := yearRe.FindString(stripped); m != "" {
				current.GraduationYear = atoi(m)
			}
			continue
		}

		if current == nil {
			continue
		}
		if containsAny(lower, universityKeywords) && current.University == "" {
			current.University = stripped
			continue
		}
		if current.GraduationYear == 0 {
			if m := yearRe.FindString(stripped); m != "" {
				current.GraduationYear = atoi(m)
			}
		}
	}
	flush()
	return entries
}

func degreeLevel(lower string) string {
	for _, kw := range educationKeywords {
		if strings.Contains(lower, kw) {
			return kw
		}
	}
	return ""
}

// totalYears sums stint durations, for CVs that never state a years figure.
func totalYears(history []types.EmploymentEntry) float64 {
	months := 0
	for _, e := range history {
		months += e.DurationMonths
	}
	if months == 0 {
		return 0
	}
	return math.Round(float64(months)/12*10) / 10
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
