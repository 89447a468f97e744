// Package embedding provides text embedding providers used by semantic
// scoring and skill matching. Providers are constructed once at process
// start and shared read-only across concurrent evaluations.
package embedding

import (
	"context"
	"math"
)

// Provider encodes texts into dense vectors. Implementations must be safe
// for concurrent use.
type Provider interface {
	// Encode returns one vector per input text, in input order.
	Encode(ctx context.Context, texts []string) ([][]float32, error)
}

// Cosine returns the cosine similarity of two vectors in [-1, 1].
// Mismatched or zero-norm inputs yield 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom <= 0 {
		return 0
	}
	return dot / denom
}
