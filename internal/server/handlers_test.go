package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logiscareer/candidate-engine/internal/cvparse"
	"github.com/logiscareer/candidate-engine/internal/embedding"
	"github.com/logiscareer/candidate-engine/internal/engine"
	"github.com/logiscareer/candidate-engine/internal/skills"
	"github.com/logiscareer/candidate-engine/internal/types"
)

// testServer builds a server without a database, sufficient for the
// non-persisting handlers.
func testServer() *Server {
	clock := func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return &Server{
		evaluator: engine.NewAt(embedding.NewResilientProvider(nil), clock),
		parser:    cvparse.NewParser(skills.NewTaxonomy()),
		validate:  validator.New(),
	}
}

func evaluateBody(t *testing.T) string {
	t.Helper()
	maxExp := 8
	req := EvaluateRequest{
		Job: &types.Job{
			JobID:              "job-1",
			Country:            "United Arab Emirates",
			Title:              "Logistics Coordinator",
			MinExperienceYears: 3,
			MaxExperienceYears: &maxExp,
			SalaryMin:          8000,
			SalaryMax:          12000,
			RequiredSkills:     []string{"excel"},
		},
		Candidate: &types.Candidate{
			CandidateID:          "cand-1",
			Nationality:          "Indian",
			CurrentCountry:       "United Arab Emirates",
			ExpectedSalary:       10000,
			TotalExperienceYears: 5,
			Skills:               []string{"excel"},
		},
	}
	data, err := json.Marshal(req)
	require.NoError(t, err)
	return string(data)
}

func TestHandleEvaluate(t *testing.T) {
	s := testServer()

	req := httptest.NewRequest("POST", "/evaluate", strings.NewReader(evaluateBody(t)))
	rec := httptest.NewRecorder()
	s.handleEvaluate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp EvaluateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Result)
	assert.Equal(t, "job-1", resp.Result.JobID)
	assert.False(t, resp.Result.IsRejected)
	assert.Empty(t, resp.EvaluationID, "nothing persisted without persist flag")
}

func TestHandleEvaluate_InvalidJSON(t *testing.T) {
	s := testServer()

	req := httptest.NewRequest("POST", "/evaluate", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	s.handleEvaluate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid JSON")
}

func TestHandleEvaluate_MissingCandidate(t *testing.T) {
	s := testServer()

	req := httptest.NewRequest("POST", "/evaluate",
		strings.NewReader(`{"job": {"job_id": "job-1", "country": "UAE", "title": "Clerk", "min_experience_years": 0, "salary_min": 1, "salary_max": 2}}`))
	rec := httptest.NewRecorder()
	s.handleEvaluate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "candidate")
}

func TestHandleParseCV_ReturnsRawExtraction(t *testing.T) {
	s := testServer()

	body := `{"cv_text": "Jane Doe\njane@example.com\nlinkedin.com/in/jane-doe\n5 years of experience in logistics.\n\nSkills\nExcel, SAP\n\nExperience\nLogistics Manager at Gulf Freight\nJan 2021 - Present"}`
	req := httptest.NewRequest("POST", "/cv/parse", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.handleParseCV(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ParsedCVResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Jane Doe", resp.FullName)
	assert.Equal(t, "jane@example.com", resp.Email)
	assert.Equal(t, "linkedin.com/in/jane-doe", resp.LinkedInURL)
	assert.Equal(t, 5.0, resp.TotalExperienceYears)
	assert.Contains(t, resp.Skills, "excel")
	require.Len(t, resp.Experience, 1)
	assert.Equal(t, "Logistics Manager", resp.Experience[0].JobTitle)
	assert.Equal(t, "Gulf Freight", resp.Experience[0].CompanyName)
	assert.True(t, resp.Experience[0].IsCurrent)
	assert.Greater(t, resp.ExtractionConfidence, 0.0)
	assert.NotEmpty(t, resp.ParsedAt)
}

func TestHandleParseToCandidate_AppliesOverrides(t *testing.T) {
	s := testServer()

	body := `{
		"cv_text": "Jane Doe\njane@example.com\n5 years of experience in logistics.\n\nSkills\nExcel, SAP",
		"candidate_id": "cand-42",
		"nationality": "Filipino",
		"current_country": "United Arab Emirates",
		"gcc_experience_years": 2
	}`
	req := httptest.NewRequest("POST", "/cv/parse-to-candidate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.handleParseToCandidate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ParseToCandidateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Candidate)

	// Request overrides win over extraction defaults.
	assert.Equal(t, "cand-42", resp.Candidate.CandidateID)
	assert.Equal(t, "Filipino", resp.Candidate.Nationality)
	assert.Equal(t, "United Arab Emirates", resp.Candidate.CurrentCountry)
	assert.Equal(t, 2.0, resp.Candidate.GCCExperience())

	// Extracted fields survive where no override is given.
	assert.Equal(t, "Jane Doe", resp.Candidate.FullName)
	assert.Equal(t, 5.0, resp.Candidate.TotalExperienceYears)
	assert.Greater(t, resp.ParsingConfidence, 0.0)
	assert.NotEmpty(t, resp.CreatedAt)
}

func TestHandleParseToCandidate_MissingCVText(t *testing.T) {
	s := testServer()

	req := httptest.NewRequest("POST", "/cv/parse-to-candidate", strings.NewReader(`{"nationality": "Indian"}`))
	rec := httptest.NewRecorder()
	s.handleParseToCandidate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleExtractSkills(t *testing.T) {
	s := testServer()

	body := `{"cv_text": "Proficient in Excel and SAP for freight planning.", "normalize": true}`
	req := httptest.NewRequest("POST", "/cv/extract-skills", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.handleExtractSkills(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ExtractSkillsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Skills, "excel")
	assert.Contains(t, resp.Skills, "sap")
	assert.Equal(t, len(resp.SkillDetails), resp.TotalSkillsFound)
}

func TestHandleExtractSkills_EmptyText(t *testing.T) {
	s := testServer()

	req := httptest.NewRequest("POST", "/cv/extract-skills", strings.NewReader(`{"cv_text": ""}`))
	rec := httptest.NewRecorder()
	s.handleExtractSkills(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleParseCV_EmptyText(t *testing.T) {
	s := testServer()

	req := httptest.NewRequest("POST", "/cv/parse", strings.NewReader(`{"cv_text": ""}`))
	rec := httptest.NewRecorder()
	s.handleParseCV(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetEvaluation_InvalidID(t *testing.T) {
	s := testServer()

	req := httptest.NewRequest("GET", "/evaluations/not-a-uuid", nil)
	req.SetPathValue("id", "not-a-uuid")
	rec := httptest.NewRecorder()
	s.handleGetEvaluation(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid evaluation ID")
}

func TestHandleListJobEvaluations_BadLimit(t *testing.T) {
	s := testServer()

	req := httptest.NewRequest("GET", "/jobs/job-1/evaluations?limit=zero", nil)
	req.SetPathValue("job_id", "job-1")
	rec := httptest.NewRecorder()
	s.handleListJobEvaluations(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidateRequest_FieldError(t *testing.T) {
	s := testServer()

	err := s.validateRequest(&ParseCVRequest{})
	require.Error(t, err)

	var ve *ErrValidation
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "cvtext", ve.Field)
	assert.Contains(t, ve.Message, "required")
}

func TestHandleHealth(t *testing.T) {
	s := testServer()

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestWithCORS_Preflight(t *testing.T) {
	s := testServer()
	handler := s.withCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the handler")
	}))

	req := httptest.NewRequest("OPTIONS", "/evaluate", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
