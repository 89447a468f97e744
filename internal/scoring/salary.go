package scoring

import "math"

// Salary score bounds. Hard salary rejection is handled by the gate, so the
// soft score never drops below 75.
const (
	salaryMinScore = 75
	salaryMaxScore = 100
)

// ScoreSalary computes soft salary alignment within the job's range.
// At or below the minimum scores 100; between min and midpoint decays
// linearly 100 to 90; between midpoint and max decays 90 to 75.
func ScoreSalary(salaryMin, salaryMax, expectedSalary int) Result {
	if salaryMax <= salaryMin {
		return Result{
			Score:       salaryMaxScore,
			Explanation: "Salary range is narrow or undefined; neutral score applied",
		}
	}

	midpoint := float64(salaryMin+salaryMax) / 2

	if expectedSalary <= salaryMin {
		return Result{
			Score:       salaryMaxScore,
			Explanation: "Expected salary is at or below minimum range; excellent alignment",
		}
	}

	if float64(expectedSalary) <= midpoint {
		ratio := (float64(expectedSalary) - float64(salaryMin)) / (midpoint - float64(salaryMin))
		return Result{
			Score:       int(math.Round(salaryMaxScore - ratio*10)),
			Explanation: "Expected salary is comfortably within job range",
		}
	}

	ratio := (float64(expectedSalary) - midpoint) / (float64(salaryMax) - midpoint)
	score := int(math.Round(90 - ratio*15))
	if score < salaryMinScore {
		score = salaryMinScore
	}
	return Result{
		Score:       score,
		Explanation: "Expected salary is near the upper limit of job range",
	}
}
