package skills

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Python 3.x ", "python 3x"},
		{"C++", "c++"},
		{"C#", "c#"},
		{"Node.js", "nodejs"},
		{"EXCEL", "excel"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in))
	}
}

func TestTaxonomy_Canonical(t *testing.T) {
	tax := NewTaxonomy()

	assert.Equal(t, "javascript", tax.Canonical("JS"))
	assert.Equal(t, "go", tax.Canonical("Golang"))
	assert.Equal(t, "kubernetes", tax.Canonical("k8s"))
	assert.Equal(t, "warehouse management system", tax.Canonical("WMS"))
	// Unknown skills canonicalize to their normalized form.
	assert.Equal(t, "cold chain", tax.Canonical("Cold Chain"))
}

func TestTaxonomy_ExcludedPairs(t *testing.T) {
	tax := NewTaxonomy()

	assert.True(t, tax.IsExcludedPair("java", "javascript"))
	assert.True(t, tax.IsExcludedPair("javascript", "java"), "exclusion is symmetric")
	assert.True(t, tax.IsExcludedPair("sales", "salesforce"))
	assert.False(t, tax.IsExcludedPair("python", "django"))
}

func TestMatcher_ExactAndSynonym(t *testing.T) {
	m := NewMatcher(NewTaxonomy(), nil)
	result := m.Match(context.Background(),
		[]string{"javascript", "excel"}, nil, []string{"JS", "Microsoft Excel"})

	require.Len(t, result.MatchedRequired, 2)
	assert.Equal(t, 0, result.ExactMatches)
	assert.Equal(t, 2, result.SynonymMatches)
	for _, detail := range result.MatchedRequired {
		assert.Equal(t, SynonymConfidence, detail.Confidence)
	}
}

func TestMatcher_ExcludedPairNeverMatches(t *testing.T) {
	m := NewMatcher(NewTaxonomy(), nil)
	result := m.Match(context.Background(), []string{"java"}, nil, []string{"javascript"})

	assert.Empty(t, result.MatchedRequired)
	assert.Equal(t, []string{"java"}, result.MissingRequired)
	assert.Zero(t, result.OverallScore)
}

func TestMatcher_BothListsEmpty(t *testing.T) {
	m := NewMatcher(NewTaxonomy(), nil)
	result := m.Match(context.Background(), nil, nil, []string{"excel"})
	assert.Equal(t, 100.0, result.OverallScore)
}

func TestMatcher_EmptyCandidateSkills(t *testing.T) {
	m := NewMatcher(NewTaxonomy(), nil)
	result := m.Match(context.Background(), []string{"excel"}, []string{"sql"}, nil)

	assert.Zero(t, result.OverallScore)
	assert.Equal(t, []string{"excel"}, result.MissingRequired)
	assert.Equal(t, []string{"sql"}, result.MissingPreferred)
}

func TestMatcher_RequiredOnlyNotDilutedByMissingPreferred(t *testing.T) {
	m := NewMatcher(NewTaxonomy(), nil)
	result := m.Match(context.Background(), []string{"excel"}, nil, []string{"excel"})
	assert.Equal(t, 100.0, result.OverallScore)
}

func TestMatcher_SeventyThirtyWeighting(t *testing.T) {
	m := NewMatcher(NewTaxonomy(), nil)

	// All required matched, no preferred matched: 0.7*100 + 0.3*0 = 70.
	onlyRequired := m.Match(context.Background(),
		[]string{"excel"}, []string{"sap"}, []string{"excel"})
	assert.InDelta(t, 70.0, onlyRequired.OverallScore, 0.001)

	// No required matched, all preferred matched: 0.7*0 + 0.3*100 = 30.
	onlyPreferred := m.Match(context.Background(),
		[]string{"sap"}, []string{"excel"}, []string{"excel"})
	assert.InDelta(t, 30.0, onlyPreferred.OverallScore, 0.001)
}

func TestMatcher_NoRequiredSkills(t *testing.T) {
	m := NewMatcher(NewTaxonomy(), nil)
	result := m.Match(context.Background(), nil, []string{"excel"}, []string{"excel"})

	// Required side treated as fully satisfied: 0.7*100 + 0.3*100 = 100.
	assert.InDelta(t, 100.0, result.OverallScore, 0.001)
	assert.Equal(t, 100.0, result.RequiredMatchScore)
}
