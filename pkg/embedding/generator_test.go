package embedding

import (
	"errors"
	"math"
	"testing"
)

// fakeProvider returns a canned response or error.
type fakeProvider struct {
	values []float32
	err    error
}

func (f *fakeProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{Values: f.values},
	}, nil
}

func norm(vec []float32) float64 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}

func TestEmbedNormalizesToUnitLength(t *testing.T) {
	tests := []struct {
		name   string
		values []float32
	}{
		{"already normalized", []float32{1, 0, 0}},
		{"large magnitude", []float32{3, 4}},
		{"small components", []float32{0.001, 0.002, 0.003}},
		{"negative components", []float32{-2, 5, -7, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewGenerator(&fakeProvider{values: tt.values})
			vec, err := gen.Embed("anything")
			if err != nil {
				t.Fatalf("Embed() error = %v", err)
			}
			if got := norm(vec); math.Abs(got-1.0) > 1e-6 {
				t.Errorf("norm = %v, want 1.0", got)
			}
		})
	}
}

func TestEmbedProviderFailure(t *testing.T) {
	gen := NewGenerator(&fakeProvider{err: errors.New("connection refused")})
	if _, err := gen.Embed("text"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Embed() error = %v, want ErrUnavailable", err)
	}
}

func TestEmbedEmptyResponse(t *testing.T) {
	gen := NewGenerator(&fakeProvider{values: nil})
	if _, err := gen.Embed("text"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Embed() error = %v, want ErrUnavailable", err)
	}
}

func TestEmbedZeroVector(t *testing.T) {
	gen := NewGenerator(&fakeProvider{values: []float32{0, 0, 0}})
	if _, err := gen.Embed("text"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Embed() error = %v, want ErrUnavailable", err)
	}
}
