// Package rules implements the hard rejection gate: ordered, short-circuiting
// disqualification checks applied before any scoring runs.
package rules

import (
	"fmt"
	"strings"
	"time"

	"github.com/logiscareer/candidate-engine/internal/types"
)

// Tolerances applied by the gate.
const (
	SalaryTolerancePercent      = 10 // allow 10% over max salary
	MaxExperienceToleranceYears = 3  // allow 3 years over max experience
	VisaExpiryWarningDays       = 90 // reject if visa expires within 90 days
)

// TraceAllPassed terminates the trace when every rule passed.
const TraceAllPassed = "PASSED_ALL_HARD_RULES"

// Work-authorization phrases accepted when the candidate is outside the job country.
var validVisaStatuses = []string{
	"work visa", "work permit", "citizen", "permanent resident",
	"pr", "nationality", "national",
}

// educationRank maps education keywords to comparable ranks. Scanned in
// declared order; the first keyword found in the input wins.
var educationRank = []struct {
	keyword string
	rank    int
}{
	{"phd", 5},
	{"doctorate", 5},
	{"masters", 4},
	{"master", 4},
	{"bachelors", 3},
	{"bachelor", 3},
	{"diploma", 2},
	{"high school", 1},
	{"secondary", 1},
}

// GateResult is the immutable outcome of the hard rejection gate.
type GateResult struct {
	IsEligible        bool
	RejectionReason   string
	RejectionRuleCode string
	RuleTrace         []string
}

// Gate evaluates the eight hard rejection rules in fixed order.
// The now parameter anchors the visa expiry check so evaluations are
// reproducible under an injected clock.
type Gate struct {
	now func() time.Time
}

// NewGate creates a gate using the wall clock.
func NewGate() *Gate {
	return &Gate{now: time.Now}
}

// NewGateAt creates a gate with an injected clock.
func NewGateAt(now func() time.Time) *Gate {
	return &Gate{now: now}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Evaluate runs the gate. Rules are checked in order HR-001..HR-008; the
// first failure terminates the gate and the whole evaluation pipeline.
func (g *Gate) Evaluate(job *types.Job, candidate *types.Candidate) GateResult {
	trace := make([]string, 0, 17)

	fail := func(code, reason string) GateResult {
		trace = append(trace, code+":FAILED")
		return GateResult{
			IsEligible:        false,
			RejectionReason:   reason,
			RejectionRuleCode: code,
			RuleTrace:         trace,
		}
	}

	// HR-001: location + work authorization
	trace = append(trace, "HR-001:CHECKING_LOCATION_AND_VISA")
	if normalize(candidate.CurrentCountry) != normalize(job.Country) {
		visa := normalize(candidate.VisaStatus)
		hasAuth := false
		for _, status := range validVisaStatuses {
			if strings.Contains(visa, status) {
				hasAuth = true
				break
			}
		}
		if !hasAuth {
			visaLabel := candidate.VisaStatus
			if visaLabel == "" {
				visaLabel = "Not specified"
			}
			return fail("HR-001", fmt.Sprintf(
				"Candidate does not have work authorization for %s. Current location: %s, Visa status: %s",
				job.Country, candidate.CurrentCountry, visaLabel))
		}
	}
	trace = append(trace, "HR-001:PASSED")

	// HR-002: visa expiry
	trace = append(trace, "HR-002:CHECKING_VISA_EXPIRY")
	if expiry, ok := parseDate(candidate.VisaExpiry); ok {
		daysUntilExpiry := int(expiry.Sub(g.now()).Hours() / 24)
		if daysUntilExpiry < VisaExpiryWarningDays {
			return fail("HR-002", fmt.Sprintf(
				"Candidate's visa expires within %d days (Expiry: %s)",
				VisaExpiryWarningDays, candidate.VisaExpiry))
		}
	}
	trace = append(trace, "HR-002:PASSED")

	// HR-003: salary expectation
	trace = append(trace, "HR-003:CHECKING_SALARY")
	salaryThreshold := float64(job.SalaryMax) * (1 + float64(SalaryTolerancePercent)/100)
	if float64(candidate.ExpectedSalary) > salaryThreshold {
		return fail("HR-003", fmt.Sprintf(
			"Candidate expected salary (%d %s) exceeds job maximum (%d %s) by more than %d%%",
			candidate.ExpectedSalary, candidate.Currency, job.SalaryMax, job.Currency,
			SalaryTolerancePercent))
	}
	trace = append(trace, "HR-003:PASSED")

	// HR-004: minimum experience
	trace = append(trace, "HR-004:CHECKING_MIN_EXPERIENCE")
	if candidate.TotalExperienceYears < float64(job.MinExperienceYears) {
		return fail("HR-004", fmt.Sprintf(
			"Candidate experience (%.1f years) is below minimum requirement (%d years)",
			candidate.TotalExperienceYears, job.MinExperienceYears))
	}
	trace = append(trace, "HR-004:PASSED")

	// HR-005: maximum experience (overqualified)
	trace = append(trace, "HR-005:CHECKING_MAX_EXPERIENCE")
	if job.MaxExperienceYears != nil {
		maxAllowed := float64(*job.MaxExperienceYears + MaxExperienceToleranceYears)
		if candidate.TotalExperienceYears > maxAllowed {
			return fail("HR-005", fmt.Sprintf(
				"Candidate is overqualified (%.1f years exceeds maximum of %d years by more than %d years)",
				candidate.TotalExperienceYears, *job.MaxExperienceYears,
				MaxExperienceToleranceYears))
		}
	}
	trace = append(trace, "HR-005:PASSED")

	// HR-006: nationality restriction
	trace = append(trace, "HR-006:CHECKING_NATIONALITY")
	if len(job.PreferredNationality) > 0 {
		candidateNationality := normalize(candidate.Nationality)
		allowed := false
		for _, n := range job.PreferredNationality {
			if normalize(n) == candidateNationality {
				allowed = true
				break
			}
		}
		if !allowed {
			return fail("HR-006", fmt.Sprintf(
				"Job requires specific nationality. Candidate nationality: %s, Required: %s",
				candidate.Nationality, strings.Join(job.PreferredNationality, ", ")))
		}
	}
	trace = append(trace, "HR-006:PASSED")

	// HR-007: education requirement
	trace = append(trace, "HR-007:CHECKING_EDUCATION")
	if job.RequiredEducation != "" {
		requiredLevel := educationLevel(job.RequiredEducation)
		candidateLevel := educationLevel(candidate.EducationLevel)
		if requiredLevel > 0 && candidateLevel < requiredLevel {
			candidateEdu := candidate.EducationLevel
			if candidateEdu == "" {
				candidateEdu = "Not specified"
			}
			return fail("HR-007", fmt.Sprintf(
				"Candidate education (%s) does not meet minimum requirement (%s)",
				candidateEdu, job.RequiredEducation))
		}
	}
	trace = append(trace, "HR-007:PASSED")

	// HR-008: GCC experience requirement
	trace = append(trace, "HR-008:CHECKING_GCC_EXPERIENCE")
	if job.RequireGCCExperience && candidate.GCCExperience() == 0 {
		return fail("HR-008", "Job requires prior GCC work experience, but candidate has none")
	}
	trace = append(trace, "HR-008:PASSED")

	trace = append(trace, TraceAllPassed)
	return GateResult{IsEligible: true, RuleTrace: trace}
}

// educationLevel resolves an education string to a comparable rank using
// the first matching keyword in the rank table's declared order.
func educationLevel(education string) int {
	normalized := normalize(education)
	if normalized == "" {
		return 0
	}
	for _, entry := range educationRank {
		if strings.Contains(normalized, entry.keyword) {
			return entry.rank
		}
	}
	return 0
}
