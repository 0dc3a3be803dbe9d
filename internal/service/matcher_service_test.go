package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"profile-match-be/internal/config"
	"profile-match-be/internal/dto"
	"profile-match-be/internal/pkg/serverutils"
	"profile-match-be/internal/repository/memory"
	"profile-match-be/pkg/embedding"
	"profile-match-be/pkg/enrich"
	"profile-match-be/pkg/scoring"
	"profile-match-be/pkg/vectorindex"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type fakeEmbedProvider struct {
	vectors map[string][]float32
	fail    bool
}

func (f *fakeEmbedProvider) Generate(text string, _ string) (*embedding.EmbeddingResponse, error) {
	if f.fail {
		return nil, errors.New("provider down")
	}
	for token, vector := range f.vectors {
		if strings.Contains(text, token) {
			return &embedding.EmbeddingResponse{
				Embedding: embedding.EmbeddingResponseEmbedding{Values: vector},
			}, nil
		}
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{1, 0, 0}},
	}, nil
}

type fakeIndex struct {
	points map[string]map[int64]vectorindex.Point
	fail   bool
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{points: make(map[string]map[int64]vectorindex.Point)}
}

func (f *fakeIndex) EnsureCollection(_ context.Context, name string, _ int) error {
	if f.fail {
		return vectorindex.ErrUnavailable
	}
	if _, ok := f.points[name]; !ok {
		f.points[name] = make(map[int64]vectorindex.Point)
	}
	return nil
}

func (f *fakeIndex) Upsert(_ context.Context, collection string, points []vectorindex.Point) error {
	if f.fail {
		return vectorindex.ErrUnavailable
	}
	if _, ok := f.points[collection]; !ok {
		f.points[collection] = make(map[int64]vectorindex.Point)
	}
	for _, point := range points {
		f.points[collection][point.Id] = point
	}
	return nil
}

func (f *fakeIndex) Search(_ context.Context, collection string, vector []float32, limit int, filter vectorindex.Filter) ([]vectorindex.SearchHit, error) {
	if f.fail {
		return nil, vectorindex.ErrUnavailable
	}

	var hits []vectorindex.SearchHit
	for id, point := range f.points[collection] {
		if !matchesFilter(point.Payload, filter) {
			continue
		}
		var score float64
		for i := range vector {
			if i < len(point.Vector) {
				score += float64(vector[i]) * float64(point.Vector[i])
			}
		}
		hits = append(hits, vectorindex.SearchHit{Id: id, Score: score})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (f *fakeIndex) Delete(_ context.Context, collection string, ids []int64) error {
	if f.fail {
		return vectorindex.ErrUnavailable
	}
	for _, id := range ids {
		delete(f.points[collection], id)
	}
	return nil
}

func (f *fakeIndex) Count(_ context.Context, collection string) (int, error) {
	if f.fail {
		return 0, vectorindex.ErrUnavailable
	}
	return len(f.points[collection]), nil
}

func matchesFilter(payload map[string]interface{}, filter vectorindex.Filter) bool {
	for key, want := range filter {
		got, ok := payload[key].(string)
		if !ok || got != want {
			return false
		}
	}
	return true
}

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Index: config.IndexConfig{
			UserCollection:    "user_profiles",
			NetworkCollection: "network_profiles",
		},
		Matching: config.MatchingConfig{
			DefaultTopN: 5,
			PopulateMax: 500,
		},
	}
}

func newTestService(t *testing.T, index vectorindex.Client, provider embedding.EmbeddingProvider) IMatcherService {
	t.Helper()
	dir := t.TempDir()
	userStore := memory.NewMappingStore(dir + "/users.json")
	networkStore := memory.NewMappingStore(dir + "/networks.json")
	enricher := enrich.NewChainEnricher(nil, enrich.NewHeuristicEnricher(nil))

	return NewMatcherService(
		testConfig(t),
		userStore,
		networkStore,
		index,
		embedding.NewGenerator(provider),
		enricher,
		scoring.NewScorer(nil),
		nil,
		nil,
		nil,
		noopLogger{},
	)
}

func TestAddUserAssignsSequentialIds(t *testing.T) {
	svc := newTestService(t, newFakeIndex(), &fakeEmbedProvider{})

	first, err := svc.AddUser(context.Background(), &dto.AddUserRequest{Name: "Mary"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), first.UserId)

	second, err := svc.AddUser(context.Background(), &dto.AddUserRequest{Name: "John"})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), second.UserId)
}

func TestAddUserDerivesSkillsAndProfession(t *testing.T) {
	svc := newTestService(t, newFakeIndex(), &fakeEmbedProvider{})

	res, err := svc.AddUser(context.Background(), &dto.AddUserRequest{
		Name:        "Mary",
		Description: "I am a farmer. Experienced in organic farming and gardening.",
		Interests:   []string{"sustainability"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "farmer", res.Profession)
	assert.Contains(t, res.Skills, "farming")
}

func TestAddUserKeepsSuppliedAttributes(t *testing.T) {
	svc := newTestService(t, newFakeIndex(), &fakeEmbedProvider{})

	res, err := svc.AddUser(context.Background(), &dto.AddUserRequest{
		Name:       "John",
		Skills:     []string{"welding"},
		Profession: "metalworker",
	})
	assert.NoError(t, err)
	assert.Equal(t, "metalworker", res.Profession)
	assert.Equal(t, []string{"welding"}, res.Skills)
}

func TestRecommendForUserExcludesSelf(t *testing.T) {
	provider := &fakeEmbedProvider{vectors: map[string][]float32{
		"Mary":  {1, 0, 0},
		"John":  {0.9, 0.1, 0},
		"Alice": {0, 1, 0},
	}}
	svc := newTestService(t, newFakeIndex(), provider)

	mary, _ := svc.AddUser(context.Background(), &dto.AddUserRequest{Name: "Mary"})
	john, _ := svc.AddUser(context.Background(), &dto.AddUserRequest{Name: "John"})
	svc.AddUser(context.Background(), &dto.AddUserRequest{Name: "Alice"})

	res, err := svc.RecommendForUser(context.Background(), mary.UserId, 5, "")
	assert.NoError(t, err)
	assert.NotEmpty(t, res.Recommendations)
	for _, rec := range res.Recommendations {
		assert.NotEqual(t, mary.UserId, rec.UserId)
	}
	assert.Equal(t, john.UserId, res.Recommendations[0].UserId)
}

func TestRecommendForUserUnknownId(t *testing.T) {
	svc := newTestService(t, newFakeIndex(), &fakeEmbedProvider{})

	_, err := svc.RecommendForUser(context.Background(), 42, 5, "")
	var appErr *serverutils.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, fiber.StatusNotFound, appErr.Code)
}

func TestRecommendIndexDown(t *testing.T) {
	index := newFakeIndex()
	svc := newTestService(t, index, &fakeEmbedProvider{})
	svc.AddUser(context.Background(), &dto.AddUserRequest{Name: "Mary"})

	index.fail = true
	_, err := svc.Recommend(context.Background(), &dto.RecommendRequest{Query: "farming"})
	var appErr *serverutils.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, fiber.StatusServiceUnavailable, appErr.Code)
}

func TestRecommendEmbeddingDown(t *testing.T) {
	provider := &fakeEmbedProvider{}
	svc := newTestService(t, newFakeIndex(), provider)
	svc.AddUser(context.Background(), &dto.AddUserRequest{Name: "Mary"})

	provider.fail = true
	_, err := svc.Recommend(context.Background(), &dto.RecommendRequest{Query: "farming"})
	var appErr *serverutils.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, fiber.StatusServiceUnavailable, appErr.Code)
}

func TestIngestSurvivesEmbeddingFailure(t *testing.T) {
	provider := &fakeEmbedProvider{fail: true}
	index := newFakeIndex()
	svc := newTestService(t, index, provider)

	res, err := svc.AddUser(context.Background(), &dto.AddUserRequest{Name: "Mary"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), res.UserId)

	// The mapping entry exists but no vector was written, so the profile
	// cannot surface in search results.
	users := svc.ListUsers(context.Background())
	assert.Contains(t, users, "1")
	assert.Empty(t, index.points["user_profiles"])

	provider.fail = false
	svc.AddUser(context.Background(), &dto.AddUserRequest{Name: "John"})

	other, err := svc.RecommendForUser(context.Background(), 2, 5, "")
	assert.NoError(t, err)
	for _, rec := range other.Recommendations {
		assert.NotEqual(t, int64(1), rec.UserId)
	}
}

func TestDeleteUserRemovesMappingImmediately(t *testing.T) {
	provider := &fakeEmbedProvider{vectors: map[string][]float32{
		"Mary": {1, 0, 0},
		"John": {0.9, 0.1, 0},
	}}
	index := newFakeIndex()
	svc := newTestService(t, index, provider)

	mary, _ := svc.AddUser(context.Background(), &dto.AddUserRequest{Name: "Mary"})
	john, _ := svc.AddUser(context.Background(), &dto.AddUserRequest{Name: "John"})

	assert.NoError(t, svc.DeleteUser(context.Background(), john.UserId))
	assert.NotContains(t, svc.ListUsers(context.Background()), "2")

	res, err := svc.RecommendForUser(context.Background(), mary.UserId, 5, "")
	assert.NoError(t, err)
	for _, rec := range res.Recommendations {
		assert.NotEqual(t, john.UserId, rec.UserId)
	}
}

func TestDeleteUserUnknownId(t *testing.T) {
	svc := newTestService(t, newFakeIndex(), &fakeEmbedProvider{})

	err := svc.DeleteUser(context.Background(), 99)
	var appErr *serverutils.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, fiber.StatusNotFound, appErr.Code)
}

func TestRecommendNetworkFilter(t *testing.T) {
	svc := newTestService(t, newFakeIndex(), &fakeEmbedProvider{})

	svc.AddUser(context.Background(), &dto.AddUserRequest{Name: "Mary"})
	svc.AddUser(context.Background(), &dto.AddUserRequest{Name: "John"})

	// User profiles carry no network id, so a network filter over the user
	// collection matches nothing.
	res, err := svc.Recommend(context.Background(), &dto.RecommendRequest{
		Query:         "farming",
		NetworkFilter: "net-1",
	})
	assert.NoError(t, err)
	assert.Empty(t, res.Recommendations)
}

func TestAddNetworkUsesOwnIdSpace(t *testing.T) {
	index := newFakeIndex()
	svc := newTestService(t, index, &fakeEmbedProvider{})

	svc.AddUser(context.Background(), &dto.AddUserRequest{Name: "Mary"})

	res, err := svc.AddNetwork(context.Background(), &dto.AddNetworkRequest{
		NetworkId: "net-1",
		Name:      "Organic Farmers",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), res.Id)

	point, ok := index.points["network_profiles"][0]
	assert.True(t, ok)
	assert.Equal(t, "net-1", point.Payload["network_id"])
}

func TestSaveIndicesWritesBothSnapshots(t *testing.T) {
	svc := newTestService(t, newFakeIndex(), &fakeEmbedProvider{})

	svc.AddUser(context.Background(), &dto.AddUserRequest{Name: "Mary"})
	svc.AddNetwork(context.Background(), &dto.AddNetworkRequest{NetworkId: "net-1", Name: "Farmers"})

	assert.NoError(t, svc.SaveIndices(context.Background()))

	health := svc.Health(context.Background())
	assert.Equal(t, 1, health.UserCount)
	assert.Equal(t, 1, health.NetworkCount)
}
