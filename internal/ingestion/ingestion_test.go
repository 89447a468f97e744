package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logiscareer/candidate-engine/internal/skills"
)

const postingHTML = `<html>
<head><title>Jobs Portal</title></head>
<body>
<nav>Home | Jobs | About</nav>
<h1>Logistics Coordinator</h1>
<main>
<p>We are hiring a Logistics Coordinator for our Dubai office.</p>
<p>Requirements: 3 to 8 years experience in freight forwarding.</p>
<p>Proficiency in Excel and SAP required.</p>
<p>Salary: AED 8,000 - 12,000 per month plus benefits.</p>
<p>Join a growing team working with international carriers and customs clearance partners across the region.</p>
</main>
<footer>Copyright 2025</footer>
<script>trackPageView();</script>
</body>
</html>`

func TestExtractText(t *testing.T) {
	title, text, err := ExtractText(postingHTML)
	require.NoError(t, err)

	assert.Equal(t, "Logistics Coordinator", title, "h1 wins over the page title")
	assert.Contains(t, text, "Dubai office")
	assert.NotContains(t, text, "Home | Jobs", "navigation is stripped")
	assert.NotContains(t, text, "Copyright", "footer is stripped")
	assert.NotContains(t, text, "trackPageView", "scripts are stripped")
}

func TestExtractText_FallsBackToPageTitle(t *testing.T) {
	title, _, err := ExtractText("<html><head><title>Fallback Title</title></head><body><p>short</p></body></html>")
	require.NoError(t, err)
	assert.Equal(t, "Fallback Title", title)
}

func TestExtractJob(t *testing.T) {
	_, text, err := ExtractText(postingHTML)
	require.NoError(t, err)

	job := ExtractJob(skills.NewTaxonomy(), "Logistics Coordinator", text)

	assert.Equal(t, "Logistics Coordinator", job.Title)
	assert.Equal(t, 3, job.MinExperienceYears)
	require.NotNil(t, job.MaxExperienceYears)
	assert.Equal(t, 8, *job.MaxExperienceYears)
	assert.Equal(t, 8000, job.SalaryMin)
	assert.Equal(t, 12000, job.SalaryMax)
	assert.Equal(t, "AED", job.Currency)
	assert.Contains(t, job.RequiredSkills, "excel")
	assert.Contains(t, job.RequiredSkills, "sap")
}

func TestExtractJob_MinimumOnlyExperience(t *testing.T) {
	job := ExtractJob(skills.NewTaxonomy(), "Driver", "Minimum 2 years driving experience required.")

	assert.Equal(t, 2, job.MinExperienceYears)
	assert.Nil(t, job.MaxExperienceYears)
}

func TestExtractJob_NoStructuredData(t *testing.T) {
	job := ExtractJob(skills.NewTaxonomy(), "Helper", "General helper needed for warehouse duties.")

	assert.Zero(t, job.MinExperienceYears)
	assert.Zero(t, job.SalaryMin)
	assert.Empty(t, job.Currency)
}

func TestExtractJob_RejectsInvertedSalaryRange(t *testing.T) {
	job := ExtractJob(skills.NewTaxonomy(), "Clerk", "Salary AED 12,000 - 8,000")

	assert.Zero(t, job.SalaryMin)
	assert.Zero(t, job.SalaryMax)
}

func TestFetchHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "candidate-engine")
		w.Write([]byte("<html><body>posting</body></html>"))
	}))
	defer srv.Close()

	html, err := FetchHTML(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, html, "posting")
}

func TestFetchHTML_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := FetchHTML(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrBadStatus)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile("/nonexistent/posting.html")
	assert.Error(t, err)
}
