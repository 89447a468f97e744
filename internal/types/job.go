// Package types provides type definitions for structured data used throughout the candidate evaluation engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Job represents a job posting to evaluate candidates against.
// Fields carry validator tags; callers validate before invoking the engine.
type Job struct {
	// Identity
	JobID string `json:"job_id" validate:"required"`

	// Employer information
	CompanyName string `json:"company_name,omitempty"`
	CompanyType string `json:"company_type,omitempty"`

	// Location & compliance
	Country string `json:"country" validate:"required"`
	State   string `json:"state,omitempty"`
	City    string `json:"city,omitempty"`

	// Role metadata
	Title          string `json:"title" validate:"required"`
	JobType        string `json:"job_type,omitempty"`
	Industry       string `json:"industry"`
	SubIndustry    string `json:"sub_industry,omitempty"`
	FunctionalArea string `json:"functional_area,omitempty"`
	Designation    string `json:"designation,omitempty"`

	// Experience requirements
	MinExperienceYears   int  `json:"min_experience_years" validate:"gte=0"`
	MaxExperienceYears   *int `json:"max_experience_years,omitempty" validate:"omitempty,gte=0"`
	RequireGCCExperience bool `json:"require_gcc_experience,omitempty"`

	// Compensation
	SalaryMin int    `json:"salary_min" validate:"gte=0"`
	SalaryMax int    `json:"salary_max" validate:"gte=0"`
	Currency  string `json:"currency,omitempty"`

	// Skills
	RequiredSkills  []string `json:"required_skills,omitempty"`
	PreferredSkills []string `json:"preferred_skills,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`

	// Eligibility criteria
	RequiredEducation    string   `json:"required_education,omitempty"`
	PreferredNationality []string `json:"preferred_nationality,omitempty"`

	// Free-text fields used by semantic and domain scoring
	JobDescription          string `json:"job_description"`
	DesiredCandidateProfile string `json:"desired_candidate_profile,omitempty"`

	// Additional metadata
	NoOfVacancies int    `json:"no_of_vacancies,omitempty"`
	JobExpiryDate string `json:"job_expiry_date,omitempty"`
}
