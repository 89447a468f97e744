package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"
	"strings"
)

// FallbackDim is the dimensionality of hash-based pseudo-embeddings.
const FallbackDim = 384

// HashProvider is a deterministic, dependency-free embedding provider.
// Each token is hashed into a fixed-size bag-of-words vector which is then
// L2-normalized. It is used when no external provider is configured and as
// the degradation path when the external provider fails, so an unavailable
// dependency never aborts an evaluation.
type HashProvider struct {
	dim int
}

// NewHashProvider creates a hash-based provider with the default dimension.
func NewHashProvider() *HashProvider {
	return &HashProvider{dim: FallbackDim}
}

// Encode implements Provider. It never fails.
func (p *HashProvider) Encode(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = p.encodeOne(text)
	}
	return vectors, nil
}

func (p *HashProvider) encodeOne(text string) []float32 {
	vec := make([]float32, p.dim)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		digest := sha256.Sum256([]byte(token))
		idx := binary.LittleEndian.Uint32(digest[:4]) % uint32(p.dim)
		vec[idx]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return vec
}
