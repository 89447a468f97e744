package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/logiscareer/candidate-engine/internal/config"
)

func authedHandler(t *testing.T, storedHash string) http.Handler {
	t.Helper()
	verifier := &config.APIKeyConfig{BcryptCost: 10}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return RequireAPIKey(verifier, storedHash)(next)
}

func keyHash(t *testing.T, key string) string {
	t.Helper()
	cfg := &config.APIKeyConfig{BcryptCost: 10}
	hash, err := cfg.HashKey(key)
	if err != nil {
		t.Fatal(err)
	}
	return hash
}

func TestRequireAPIKey_ValidKey(t *testing.T) {
	handler := authedHandler(t, keyHash(t, "secret"))

	req := httptest.NewRequest("POST", "/evaluate", nil)
	req.Header.Set("X-API-Key", "secret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAPIKey_MissingOrWrongKey(t *testing.T) {
	handler := authedHandler(t, keyHash(t, "secret"))

	req := httptest.NewRequest("POST", "/evaluate", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest("POST", "/evaluate", nil)
	req.Header.Set("X-API-Key", "wrong")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAPIKey_HealthIsOpen(t *testing.T) {
	handler := authedHandler(t, keyHash(t, "secret"))

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAPIKey_EmptyHashDisablesAuth(t *testing.T) {
	handler := authedHandler(t, "")

	req := httptest.NewRequest("POST", "/evaluate", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
