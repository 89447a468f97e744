// Package skills provides the skill taxonomy and the multi-strategy matcher
// used by skills scoring and CV skill extraction. The taxonomy is built once
// at process start and treated as immutable afterwards.
package skills

import (
	"regexp"
	"strings"
)

// synonymGroups lists skills that should be treated as the same skill.
// The first entry of each group is the canonical form.
var synonymGroups = [][]string{
	{"javascript", "js", "ecmascript"},
	{"typescript", "ts"},
	{"python", "python 3", "python3"},
	{"go", "golang"},
	{"machine learning", "ml"},
	{"artificial intelligence", "ai"},
	{"deep learning", "dl"},
	{"natural language processing", "nlp"},
	{"kubernetes", "k8s"},
	{"postgresql", "postgres"},
	{"microsoft excel", "excel", "ms excel"},
	{"microsoft office", "ms office"},
	{"amazon web services", "aws"},
	{"google cloud platform", "gcp", "google cloud"},
	{"continuous integration", "ci", "ci/cd", "cicd"},
	{"supply chain management", "scm", "supply chain"},
	{"warehouse management system", "wms"},
	{"transportation management system", "tms"},
	{"enterprise resource planning", "erp"},
	{"customer relationship management", "crm"},
	{"business development", "biz dev", "bizdev"},
	{"third party logistics", "3pl"},
	{"freight forwarding", "freight"},
	{"project management", "pm"},
	{"quality assurance", "qa"},
	{"user experience", "ux"},
	{"user interface", "ui"},
	{"search engine optimization", "seo"},
	{"structured query language", "sql"},
}

// excludedPairs lists skills that look related but must never match one
// another, by exact string or by semantic similarity.
var excludedPairs = [][2]string{
	{"python", "java"},
	{"java", "javascript"},
	{"c", "c++"},
	{"c++", "c#"},
	{"go", "rust"},
	{"sales", "salesforce"},
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9+# ]+`)

// Taxonomy resolves skill strings to canonical forms and answers
// exclusion queries. Safe for concurrent read-only use.
type Taxonomy struct {
	canonical map[string]string
	excluded  map[[2]string]bool
}

// NewTaxonomy builds the default taxonomy.
func NewTaxonomy() *Taxonomy {
	t := &Taxonomy{
		canonical: make(map[string]string),
		excluded:  make(map[[2]string]bool),
	}
	for _, group := range synonymGroups {
		root := group[0]
		for _, alias := range group {
			t.canonical[alias] = root
		}
	}
	for _, pair := range excludedPairs {
		t.excluded[[2]string{pair[0], pair[1]}] = true
		t.excluded[[2]string{pair[1], pair[0]}] = true
	}
	return t
}

// Normalize lowercases a skill and strips punctuation noise, so
// "  Python 3.x " becomes "python 3x".
func Normalize(skill string) string {
	s := strings.ToLower(strings.TrimSpace(skill))
	s = nonAlnum.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// Canonical returns the canonical form of a skill, applying synonym
// resolution after normalization.
func (t *Taxonomy) Canonical(skill string) string {
	normalized := Normalize(skill)
	if root, ok := t.canonical[normalized]; ok {
		return root
	}
	return normalized
}

// IsExcludedPair reports whether two skills must never be matched.
func (t *Taxonomy) IsExcludedPair(a, b string) bool {
	return t.excluded[[2]string{t.Canonical(a), t.Canonical(b)}]
}

// KnownSkills returns every canonical skill and alias in the taxonomy.
// Used by the CV parser for dictionary-based skill extraction.
func (t *Taxonomy) KnownSkills() []string {
	out := make([]string, 0, len(t.canonical))
	for alias := range t.canonical {
		out = append(out, alias)
	}
	return out
}
