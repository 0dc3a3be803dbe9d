package vectorindex

import (
	"context"
	"errors"
)

// ErrUnavailable marks any transport or backend failure of the index.
// It is distinct from "not found": an empty result set is a valid,
// non-error outcome.
var ErrUnavailable = errors.New("vector index unavailable")

// Point is one indexed vector. Ids are zero-based (internal profile id - 1);
// the payload mirrors the profile fields so filtered search can match on
// them.
type Point struct {
	Id      int64
	Vector  []float32
	Payload map[string]interface{}
}

// SearchHit pairs a point id with its raw similarity, descending by score.
type SearchHit struct {
	Id    int64
	Score float64
}

// Filter is an equality predicate over payload fields.
type Filter map[string]string

// Client is the contract over an external vector database. All operations
// are idempotent with respect to retries at the network layer.
type Client interface {
	// EnsureCollection is a no-op if the collection already exists with a
	// compatible dimensionality; otherwise it creates it with cosine
	// similarity as the distance metric.
	EnsureCollection(ctx context.Context, name string, dimension int) error

	// Upsert replaces any existing point with the same id.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search returns up to limit nearest neighbors by descending score.
	// The limit is clamped to [1, min(limit, indexed points)].
	Search(ctx context.Context, collection string, vector []float32, limit int, filter Filter) ([]SearchHit, error)

	Delete(ctx context.Context, collection string, ids []int64) error

	Count(ctx context.Context, collection string) (int, error)
}

// ClampLimit bounds a requested neighbor count to what the index can
// actually return.
func ClampLimit(requested, indexed int) int {
	if requested > indexed {
		requested = indexed
	}
	if requested < 1 {
		requested = 1
	}
	return requested
}
