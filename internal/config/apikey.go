package config

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// APIKeyConfig holds configuration for hashing and verifying client API
// keys. Keys are stored only as bcrypt hashes.
type APIKeyConfig struct {
	BcryptCost int
	Pepper     string // optional global secret mixed into every key
}

// NewAPIKeyConfig creates an API key configuration from environment
// variables. Reads BCRYPT_COST (default 12) and optionally API_KEY_PEPPER.
func NewAPIKeyConfig() (*APIKeyConfig, error) {
	costStr := os.Getenv("BCRYPT_COST")
	if costStr == "" {
		costStr = "12"
	}

	cost, err := strconv.Atoi(costStr)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %v", err)
	}
	if cost < 10 || cost > 14 {
		return nil, fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", cost)
	}

	return &APIKeyConfig{
		BcryptCost: cost,
		Pepper:     os.Getenv("API_KEY_PEPPER"),
	}, nil
}

// HashKey hashes an API key using bcrypt with the optional pepper.
func (c *APIKeyConfig) HashKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key+c.Pepper), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash API key: %w", err)
	}
	return string(hash), nil
}

// VerifyKey verifies an API key against a stored hash.
func (c *APIKeyConfig) VerifyKey(key, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(key+c.Pepper)) == nil
}
