package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/logiscareer/candidate-engine/internal/cvparse"
	"github.com/logiscareer/candidate-engine/internal/types"
)

// EvaluateRequest is the payload for POST /evaluate.
type EvaluateRequest struct {
	Job       *types.Job       `json:"job" validate:"required"`
	Candidate *types.Candidate `json:"candidate" validate:"required"`
	Persist   bool             `json:"persist,omitempty"`
}

// EvaluateResponse wraps the evaluation result with its storage ID when
// persisted.
type EvaluateResponse struct {
	EvaluationID string                  `json:"evaluation_id,omitempty"`
	Result       *types.EvaluationResult `json:"result"`
}

// ParseCVRequest is the payload for POST /cv/parse and the cv portion of
// POST /cv/evaluate.
type ParseCVRequest struct {
	CVText string `json:"cv_text" validate:"required"`
	Refine bool   `json:"refine,omitempty"` // run LLM refinement when available
}

// ParsedCVResponse is the raw extraction surface returned by POST /cv/parse.
// Callers that want an evaluatable candidate use /cv/parse-to-candidate.
type ParsedCVResponse struct {
	Success              bool                    `json:"success"`
	FullName             string                  `json:"full_name,omitempty"`
	Email                string                  `json:"email,omitempty"`
	MobileNumber         string                  `json:"mobile_number,omitempty"`
	LinkedInURL          string                  `json:"linkedin_url,omitempty"`
	Skills               []string                `json:"skills"`
	Experience           []types.EmploymentEntry `json:"experience"`
	Education            []types.EducationEntry  `json:"education"`
	TotalExperienceYears float64                 `json:"total_experience_years,omitempty"`
	LanguagesKnown       []string                `json:"languages_known,omitempty"`
	EmploymentSummary    string                  `json:"employment_summary,omitempty"`
	ExtractionConfidence float64                 `json:"extraction_confidence"`
	ParsingWarnings      []string                `json:"parsing_warnings,omitempty"`
	ParsedAt             string                  `json:"parsed_at"`
}

// ParseToCandidateRequest is the payload for POST /cv/parse-to-candidate.
// The optional fields override whatever the parser extracted, covering the
// details recruiters hold outside the CV.
type ParseToCandidateRequest struct {
	CVText               string   `json:"cv_text" validate:"required"`
	Refine               bool     `json:"refine,omitempty"`
	CandidateID          string   `json:"candidate_id,omitempty"`
	Nationality          string   `json:"nationality,omitempty"`
	CurrentCountry       string   `json:"current_country,omitempty"`
	ExpectedSalary       int      `json:"expected_salary,omitempty" validate:"omitempty,gte=0"`
	Currency             string   `json:"currency,omitempty"`
	TotalExperienceYears *float64 `json:"total_experience_years,omitempty" validate:"omitempty,gte=0"`
	VisaStatus           string   `json:"visa_status,omitempty"`
	GCCExperienceYears   *float64 `json:"gcc_experience_years,omitempty" validate:"omitempty,gte=0"`
}

// ParseToCandidateResponse wraps the mapped candidate for POST
// /cv/parse-to-candidate.
type ParseToCandidateResponse struct {
	Success           bool             `json:"success"`
	Candidate         *types.Candidate `json:"candidate"`
	ParsingConfidence float64          `json:"parsing_confidence"`
	ParsingWarnings   []string         `json:"parsing_warnings,omitempty"`
	CreatedAt         string           `json:"created_at"`
}

// ExtractSkillsRequest is the payload for POST /cv/extract-skills.
type ExtractSkillsRequest struct {
	CVText    string `json:"cv_text" validate:"required"`
	Normalize bool   `json:"normalize,omitempty"` // return canonical taxonomy names
}

// ExtractSkillsResponse lists the skills found by the taxonomy pass.
type ExtractSkillsResponse struct {
	Success          bool                 `json:"success"`
	Skills           []string             `json:"skills"`
	SkillDetails     []cvparse.SkillMatch `json:"skill_details"`
	TotalSkillsFound int                  `json:"total_skills_found"`
}

// EvaluateCVRequest is the payload for POST /cv/evaluate.
type EvaluateCVRequest struct {
	Job     *types.Job `json:"job" validate:"required"`
	CVText  string     `json:"cv_text" validate:"required"`
	Refine  bool       `json:"refine,omitempty"`
	Persist bool       `json:"persist,omitempty"`
}

// handleEvaluate runs the pipeline on a structured job/candidate pair.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := s.validateRequest(&req); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	result, err := s.evaluator.Evaluate(r.Context(), req.Job, req.Candidate)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := EvaluateResponse{Result: result}
	if req.Persist {
		id, err := s.db.SaveEvaluation(r.Context(), result)
		if err != nil {
			log.Printf("Failed to persist evaluation: %v", err)
		} else {
			resp.EvaluationID = id.String()
		}
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleParseCV returns the raw extraction surface for CV text without
// mapping it to a candidate.
func (s *Server) handleParseCV(w http.ResponseWriter, r *http.Request) {
	var req ParseCVRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := s.validateRequest(&req); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	extracted := s.parseCV(r, req.CVText, req.Refine)

	s.jsonResponse(w, http.StatusOK, ParsedCVResponse{
		Success:              true,
		FullName:             extracted.FullName,
		Email:                extracted.Email,
		MobileNumber:         extracted.MobileNumber,
		LinkedInURL:          extracted.LinkedInURL,
		Skills:               extracted.Skills,
		Experience:           extracted.EmploymentHistory,
		Education:            extracted.EducationDetails,
		TotalExperienceYears: extracted.TotalExperienceYears,
		LanguagesKnown:       extracted.LanguagesKnown,
		EmploymentSummary:    extracted.EmploymentSummary,
		ExtractionConfidence: extracted.ExtractionConfidence,
		ParsingWarnings:      extracted.ParsingWarnings,
		ParsedAt:             time.Now().UTC().Format(time.RFC3339),
	})
}

// handleParseToCandidate parses CV text into an evaluatable candidate,
// applying any request-supplied overrides on top of the extraction.
func (s *Server) handleParseToCandidate(w http.ResponseWriter, r *http.Request) {
	var req ParseToCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := s.validateRequest(&req); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	extracted := s.parseCV(r, req.CVText, req.Refine)
	candidate := cvparse.MapToCandidate(extracted)
	applyCandidateOverrides(candidate, &req)

	s.jsonResponse(w, http.StatusOK, ParseToCandidateResponse{
		Success:           true,
		Candidate:         candidate,
		ParsingConfidence: extracted.ExtractionConfidence,
		ParsingWarnings:   extracted.ParsingWarnings,
		CreatedAt:         time.Now().UTC().Format(time.RFC3339),
	})
}

// handleExtractSkills runs only the taxonomy dictionary pass over CV text.
func (s *Server) handleExtractSkills(w http.ResponseWriter, r *http.Request) {
	var req ExtractSkillsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := s.validateRequest(&req); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	details := s.parser.ExtractSkillDetails(req.CVText)
	skills := make([]string, 0, len(details))
	for _, d := range details {
		if req.Normalize {
			skills = append(skills, d.Canonical)
		} else {
			skills = append(skills, d.Skill)
		}
	}

	s.jsonResponse(w, http.StatusOK, ExtractSkillsResponse{
		Success:          true,
		Skills:           skills,
		SkillDetails:     details,
		TotalSkillsFound: len(details),
	})
}

// applyCandidateOverrides lets request fields win over extracted ones.
func applyCandidateOverrides(candidate *types.Candidate, req *ParseToCandidateRequest) {
	if req.CandidateID != "" {
		candidate.CandidateID = req.CandidateID
	}
	if req.Nationality != "" {
		candidate.Nationality = req.Nationality
	}
	if req.CurrentCountry != "" {
		candidate.CurrentCountry = req.CurrentCountry
	}
	if req.ExpectedSalary > 0 {
		candidate.ExpectedSalary = req.ExpectedSalary
	}
	if req.Currency != "" {
		candidate.Currency = req.Currency
	}
	if req.TotalExperienceYears != nil {
		candidate.TotalExperienceYears = *req.TotalExperienceYears
	}
	if req.VisaStatus != "" {
		candidate.VisaStatus = req.VisaStatus
	}
	if req.GCCExperienceYears != nil {
		candidate.GCCExperienceYears = req.GCCExperienceYears
	}
}

// handleEvaluateCV parses a CV and evaluates the extracted candidate
// against the job in one call.
func (s *Server) handleEvaluateCV(w http.ResponseWriter, r *http.Request) {
	var req EvaluateCVRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := s.validateRequest(&req); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	candidate := cvparse.MapToCandidate(s.parseCV(r, req.CVText, req.Refine))

	result, err := s.evaluator.Evaluate(r.Context(), req.Job, candidate)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := EvaluateResponse{Result: result}
	if req.Persist {
		id, err := s.db.SaveEvaluation(r.Context(), result)
		if err != nil {
			log.Printf("Failed to persist evaluation: %v", err)
		} else {
			resp.EvaluationID = id.String()
		}
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleGetEvaluation retrieves a stored evaluation by ID.
func (s *Server) handleGetEvaluation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid evaluation ID")
		return
	}

	record, err := s.db.GetEvaluation(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if record == nil {
		notFound := &ErrEvaluationNotFound{ID: id}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, record)
}

// handleListJobEvaluations lists stored evaluations for a job, newest first.
func (s *Server) handleListJobEvaluations(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("job_id")
	if jobID == "" {
		s.errorResponse(w, http.StatusBadRequest, "job_id is required")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	records, err := s.db.ListEvaluationsByJob(r.Context(), jobID, limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"job_id":      jobID,
		"evaluations": records,
	})
}

// parseCV runs heuristic CV parsing, with LLM refinement when requested
// and configured. Refinement failures degrade to the heuristic result.
func (s *Server) parseCV(r *http.Request, cvText string, refine bool) *cvparse.Extracted {
	extracted := s.parser.Parse(cvText)
	if refine && s.llmClient != nil {
		if err := cvparse.Refine(r.Context(), s.llmClient, extracted); err != nil {
			log.Printf("CV refinement failed, using heuristic parse: %v", err)
		}
	}
	return extracted
}

// validateRequest runs struct tag validation and converts failures into a
// field-level error.
func (s *Server) validateRequest(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		first := validationErrors[0]
		return &ErrValidation{
			Field:   strings.ToLower(first.Field()),
			Message: "failed " + first.Tag() + " validation",
		}
	}
	return &ErrValidation{Field: "(request)", Message: err.Error()}
}
