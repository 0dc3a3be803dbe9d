package embedding

import (
	"errors"
	"math"
)

// ErrUnavailable is returned whenever an embedding cannot be produced:
// transport failure, empty response, or a zero-norm vector. Callers must
// handle it explicitly; ingestion skips the index write and keeps the
// mapping entry, the recommend path fails the whole request.
var ErrUnavailable = errors.New("embedding unavailable")

// Generator wraps a provider and guarantees unit-normalized output.
// Cosine similarity over normalized vectors reduces to a dot product.
type Generator struct {
	provider EmbeddingProvider
}

func NewGenerator(provider EmbeddingProvider) *Generator {
	return &Generator{provider: provider}
}

func (g *Generator) Embed(text string) ([]float32, error) {
	res, err := g.provider.Generate(text, "SEMANTIC_SIMILARITY")
	if err != nil {
		return nil, ErrUnavailable
	}
	if res == nil || len(res.Embedding.Values) == 0 {
		return nil, ErrUnavailable
	}

	normalized, ok := normalizeVector(res.Embedding.Values)
	if !ok {
		return nil, ErrUnavailable
	}
	return normalized, nil
}

// normalizeVector scales a vector to unit length. A zero vector cannot be
// normalized; ok is false instead of dividing by zero.
func normalizeVector(vec []float32) ([]float32, bool) {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)

	if magnitude == 0 {
		return nil, false
	}

	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = float32(float64(v) / magnitude)
	}
	return normalized, true
}
