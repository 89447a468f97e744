package cvparse

import (
	"github.com/google/uuid"

	"github.com/logiscareer/candidate-engine/internal/types"
)

// Defaults substituted for fields the CV does not state. The engine's
// scorers treat these as neutral rather than disqualifying.
const (
	DefaultNationality = "Not Specified"
	DefaultCountry     = "Not Specified"
	DefaultCurrency    = "AED"
)

// MapToCandidate converts a parse result into an evaluatable candidate,
// assigning a fresh ID and filling documented defaults for missing fields.
func MapToCandidate(extracted *Extracted) *types.Candidate {
	candidate := &types.Candidate{
		CandidateID:          uuid.NewString(),
		FullName:             extracted.FullName,
		Email:                extracted.Email,
		MobileNumber:         extracted.MobileNumber,
		Nationality:          extracted.Nationality,
		CurrentCountry:       extracted.CurrentCountry,
		CurrentCity:          extracted.CurrentCity,
		VisaStatus:           extracted.VisaStatus,
		TotalExperienceYears: extracted.TotalExperienceYears,
		ExpectedSalary:       extracted.ExpectedSalary,
		Currency:             extracted.Currency,
		Skills:               extracted.Skills,
		EducationLevel:       extracted.EducationLevel,
		EducationDetails:     extracted.EducationDetails,
		LanguagesKnown:       extracted.LanguagesKnown,
		EmploymentSummary:    extracted.EmploymentSummary,
		EmploymentHistory:    extracted.EmploymentHistory,
		CVText:               extracted.RawText,
	}

	if candidate.Nationality == "" {
		candidate.Nationality = DefaultNationality
	}
	if candidate.CurrentCountry == "" {
		candidate.CurrentCountry = DefaultCountry
	}
	if candidate.Currency == "" {
		candidate.Currency = DefaultCurrency
	}

	return candidate
}
