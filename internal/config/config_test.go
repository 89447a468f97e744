package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeTempFile(t, "config.json", `{
		"job": "job.json",
		"candidate": "candidate.json",
		"embedding_model": "text-embedding-004",
		"workers": 4
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "job.json", cfg.Job)
	assert.Equal(t, "candidate.json", cfg.Candidate)
	assert.Equal(t, "text-embedding-004", cfg.EmbeddingModel)
	assert.Equal(t, 4, cfg.Workers)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_MalformedJSON(t *testing.T) {
	path := writeTempFile(t, "bad.json", `{not json`)
	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "failed to parse config JSON")
}

func TestValidate(t *testing.T) {
	jobPath := writeTempFile(t, "job.json", `{}`)

	valid := &Config{Job: jobPath, Workers: 2}
	assert.NoError(t, valid.Validate())

	negative := &Config{Workers: -1}
	assert.ErrorContains(t, negative.Validate(), "workers")

	missing := &Config{Job: "/nonexistent/job.json"}
	assert.ErrorContains(t, missing.Validate(), "job file not found")
}

func TestMergeWithDefaults(t *testing.T) {
	flags := &Config{Job: "flag-job.json"}
	defaults := Config{
		Job:         "default-job.json",
		Candidate:   "default-candidate.json",
		DatabaseURL: "postgres://localhost/engine",
		Workers:     8,
	}

	merged := flags.MergeWithDefaults(defaults)

	// Explicit flag values win; empty fields fall back to the file.
	assert.Equal(t, "flag-job.json", merged.Job)
	assert.Equal(t, "default-candidate.json", merged.Candidate)
	assert.Equal(t, "postgres://localhost/engine", merged.DatabaseURL)
	assert.Equal(t, 8, merged.Workers)
}

func TestNewAPIKeyConfig_Defaults(t *testing.T) {
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("API_KEY_PEPPER", "")

	cfg, err := NewAPIKeyConfig()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Empty(t, cfg.Pepper)
}

func TestNewAPIKeyConfig_CostOutOfRange(t *testing.T) {
	t.Setenv("BCRYPT_COST", "4")
	_, err := NewAPIKeyConfig()
	assert.ErrorContains(t, err, "out of range")

	t.Setenv("BCRYPT_COST", "not-a-number")
	_, err = NewAPIKeyConfig()
	assert.ErrorContains(t, err, "invalid BCRYPT_COST")
}

func TestAPIKey_HashAndVerify(t *testing.T) {
	cfg := &APIKeyConfig{BcryptCost: 10, Pepper: "pepper"}

	hash, err := cfg.HashKey("secret-key")
	require.NoError(t, err)

	assert.True(t, cfg.VerifyKey("secret-key", hash))
	assert.False(t, cfg.VerifyKey("wrong-key", hash))

	// A different pepper invalidates every stored hash.
	other := &APIKeyConfig{BcryptCost: 10, Pepper: "other"}
	assert.False(t, other.VerifyKey("secret-key", hash))
}
