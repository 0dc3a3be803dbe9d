package pgvector

import (
	"context"
	"encoding/json"
	"fmt"

	"profile-match-be/pkg/vectorindex"

	pgv "github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store implements the vector index contract on top of Postgres with the
// pgvector extension, for deployments that would rather not run a separate
// index server. Points from all collections share one table, partitioned by
// the collection column.
type Store struct {
	db *gorm.DB
}

var _ vectorindex.Client = &Store{}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

type pointRow struct {
	Collection string         `gorm:"column:collection"`
	PointId    int64          `gorm:"column:point_id"`
	Embedding  pgv.Vector     `gorm:"column:embedding"`
	Payload    datatypes.JSON `gorm:"column:payload"`
}

func (pointRow) TableName() string {
	return "vector_points"
}

func (s *Store) EnsureCollection(ctx context.Context, name string, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("%w: invalid dimension %d", vectorindex.ErrUnavailable, dimension)
	}

	db := s.db.WithContext(ctx)
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("%w: enable pgvector: %v", vectorindex.ErrUnavailable, err)
	}

	createStmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS vector_points (
		collection text NOT NULL,
		point_id bigint NOT NULL,
		embedding vector(%d) NOT NULL,
		payload jsonb,
		PRIMARY KEY (collection, point_id)
	)`, dimension)
	if err := db.Exec(createStmt).Error; err != nil {
		return fmt.Errorf("%w: create vector_points: %v", vectorindex.ErrUnavailable, err)
	}
	return nil
}

func (s *Store) Upsert(ctx context.Context, collection string, points []vectorindex.Point) error {
	if len(points) == 0 {
		return nil
	}
	db := s.db.WithContext(ctx)
	for _, p := range points {
		payloadJson, err := json.Marshal(p.Payload)
		if err != nil {
			return fmt.Errorf("%w: marshal payload: %v", vectorindex.ErrUnavailable, err)
		}
		err = db.Exec(`INSERT INTO vector_points (collection, point_id, embedding, payload)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (collection, point_id)
			DO UPDATE SET embedding = EXCLUDED.embedding, payload = EXCLUDED.payload`,
			collection, p.Id, pgv.NewVector(p.Vector), datatypes.JSON(payloadJson),
		).Error
		if err != nil {
			return fmt.Errorf("%w: upsert point %d: %v", vectorindex.ErrUnavailable, p.Id, err)
		}
	}
	return nil
}

func (s *Store) Search(ctx context.Context, collection string, vector []float32, limit int, filter vectorindex.Filter) ([]vectorindex.SearchHit, error) {
	total, err := s.Count(ctx, collection)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return []vectorindex.SearchHit{}, nil
	}

	queryVector := pgv.NewVector(vector)

	// Cosine distance in pgvector is 1 - cosine_similarity
	query := s.db.WithContext(ctx).
		Table("vector_points").
		Select("point_id AS id, 1 - (embedding <=> ?) AS score", queryVector).
		Where("collection = ?", collection)
	for key, value := range filter {
		query = query.Where("payload ->> ? = ?", key, value)
	}

	var hits []vectorindex.SearchHit
	err = query.
		Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "embedding <=> ?", Vars: []interface{}{queryVector}},
		}).
		Limit(vectorindex.ClampLimit(limit, total)).
		Scan(&hits).Error
	if err != nil {
		return nil, fmt.Errorf("%w: search: %v", vectorindex.ErrUnavailable, err)
	}
	return hits, nil
}

func (s *Store) Delete(ctx context.Context, collection string, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).
		Exec("DELETE FROM vector_points WHERE collection = ? AND point_id IN ?", collection, ids).Error
	if err != nil {
		return fmt.Errorf("%w: delete: %v", vectorindex.ErrUnavailable, err)
	}
	return nil
}

func (s *Store) Count(ctx context.Context, collection string) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Table("vector_points").
		Where("collection = ?", collection).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("%w: count: %v", vectorindex.ErrUnavailable, err)
	}
	return int(count), nil
}
