package scoring

import "strings"

// Domain score levels.
const (
	DomainDefaultScore      = 75
	domainPartialMatchScore = 85
	domainStrongMatchScore  = 95
)

// DomainResult extends Result with the matched industry terms.
type DomainResult struct {
	Result
	MatchedDomains []string
}

// ScoreDomain computes industry alignment by scanning the candidate's
// employment summary for the job's industry and sub-industry terms.
// Missing text yields a neutral score, never an error.
func ScoreDomain(jobIndustry, jobSubIndustry, employmentSummary string) DomainResult {
	if strings.TrimSpace(employmentSummary) == "" || strings.TrimSpace(jobIndustry) == "" {
		return DomainResult{
			Result: Result{
				Score:       DomainDefaultScore,
				Explanation: "No employment summary provided; neutral domain score applied",
			},
		}
	}

	summary := strings.ToLower(employmentSummary)
	var matched []string

	if strings.Contains(summary, strings.ToLower(jobIndustry)) {
		matched = append(matched, strings.ToLower(jobIndustry))
	}
	if jobSubIndustry != "" && strings.Contains(summary, strings.ToLower(jobSubIndustry)) {
		matched = append(matched, strings.ToLower(jobSubIndustry))
	}

	switch len(matched) {
	case 0:
		return DomainResult{
			Result: Result{
				Score:       DomainDefaultScore,
				Explanation: "No direct industry alignment detected; neutral score applied",
			},
		}
	case 1:
		return DomainResult{
			Result: Result{
				Score:       domainPartialMatchScore,
				Explanation: "Partial alignment with job industry",
			},
			MatchedDomains: matched,
		}
	default:
		return DomainResult{
			Result: Result{
				Score:       domainStrongMatchScore,
				Explanation: "Strong alignment with job industry and sub-industry",
			},
			MatchedDomains: matched,
		}
	}
}
