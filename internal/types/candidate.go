package types

// EmploymentEntry is a structured employment history record.
type EmploymentEntry struct {
	CompanyName      string `json:"company_name"`
	JobTitle         string `json:"job_title"`
	Industry         string `json:"industry,omitempty"`
	Location         string `json:"location,omitempty"`
	StartDate        string `json:"start_date,omitempty"` // YYYY-MM
	EndDate          string `json:"end_date,omitempty"`   // YYYY-MM or "Present"
	DurationMonths   int    `json:"duration_months,omitempty"`
	Responsibilities string `json:"responsibilities,omitempty"`
	IsCurrent        bool   `json:"is_current,omitempty"`
}

// EducationEntry is a structured education record.
type EducationEntry struct {
	EducationLevel string `json:"education_level"`
	FieldOfStudy   string `json:"field_of_study,omitempty"`
	University     string `json:"university,omitempty"`
	Country        string `json:"country,omitempty"`
	GraduationYear int    `json:"graduation_year,omitempty"`
}

// Candidate represents a candidate profile, either supplied directly
// or produced by the CV parsing pipeline.
type Candidate struct {
	// Identity
	CandidateID string `json:"candidate_id" validate:"required"`

	// Personal information
	FullName    string `json:"full_name,omitempty"`
	Nationality string `json:"nationality" validate:"required"`

	// Location & contact
	CurrentCountry string `json:"current_country" validate:"required"`
	CurrentCity    string `json:"current_city,omitempty"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	MobileNumber   string `json:"mobile_number,omitempty"`

	// Visa & work authorization
	VisaStatus string `json:"visa_status,omitempty"`
	VisaExpiry string `json:"visa_expiry,omitempty"` // ISO date

	// Compensation
	CurrentSalary  int    `json:"current_salary,omitempty" validate:"omitempty,gte=0"`
	ExpectedSalary int    `json:"expected_salary" validate:"gte=0"`
	Currency       string `json:"currency,omitempty"`

	// Professional profile
	TotalExperienceYears float64  `json:"total_experience_years" validate:"gte=0"`
	GCCExperienceYears   *float64 `json:"gcc_experience_years,omitempty" validate:"omitempty,gte=0"`

	// Skills
	Skills []string `json:"skills"`

	// Education
	EducationLevel   string           `json:"education_level,omitempty"`
	EducationDetails []EducationEntry `json:"education_details,omitempty"`

	// Employment history
	EmploymentSummary string            `json:"employment_summary,omitempty"`
	EmploymentHistory []EmploymentEntry `json:"employment_history,omitempty"`

	// Languages
	LanguagesKnown []string `json:"languages_known,omitempty"`

	// CV content used by semantic scoring
	CVText string `json:"cv_text,omitempty"`
}

// GCCExperience returns the candidate's GCC experience in years, zero when absent.
func (c *Candidate) GCCExperience() float64 {
	if c.GCCExperienceYears == nil {
		return 0
	}
	return *c.GCCExperienceYears
}
