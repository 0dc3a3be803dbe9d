package qdrant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"profile-match-be/pkg/vectorindex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeQdrant records requests and serves canned collection state.
type fakeQdrant struct {
	pointsCount   int
	collectionDim int
	lastSearch    map[string]any
	lastUpsert    map[string]any
	lastDelete    map[string]any
}

func (f *fakeQdrant) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /collections/profiles", func(w http.ResponseWriter, r *http.Request) {
		if f.collectionDim == 0 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `{"result": {"points_count": %d, "config": {"params": {"vectors": {"size": %d}}}}}`,
			f.pointsCount, f.collectionDim)
	})
	mux.HandleFunc("PUT /collections/profiles", func(w http.ResponseWriter, r *http.Request) {
		f.collectionDim = 768
		fmt.Fprint(w, `{"result": true}`)
	})
	mux.HandleFunc("PUT /collections/profiles/points", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&f.lastUpsert)
		fmt.Fprint(w, `{"result": {"status": "completed"}}`)
	})
	mux.HandleFunc("POST /collections/profiles/points/search", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&f.lastSearch)
		fmt.Fprint(w, `{"result": [{"id": 1, "score": 0.91}, {"id": 0, "score": 0.42}]}`)
	})
	mux.HandleFunc("POST /collections/profiles/points/delete", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&f.lastDelete)
		fmt.Fprint(w, `{"result": {"status": "completed"}}`)
	})

	return mux
}

func newTestClient(t *testing.T, fake *fakeQdrant) *Client {
	t.Helper()
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)
	return NewClient(Config{URL: server.URL})
}

func TestEnsureCollectionCreatesWhenAbsent(t *testing.T) {
	fake := &fakeQdrant{}
	client := newTestClient(t, fake)

	require.NoError(t, client.EnsureCollection(context.Background(), "profiles", 768))
	assert.Equal(t, 768, fake.collectionDim)
}

func TestEnsureCollectionNoOpWhenCompatible(t *testing.T) {
	fake := &fakeQdrant{collectionDim: 768}
	client := newTestClient(t, fake)

	require.NoError(t, client.EnsureCollection(context.Background(), "profiles", 768))
}

func TestEnsureCollectionRejectsDimensionMismatch(t *testing.T) {
	fake := &fakeQdrant{collectionDim: 384}
	client := newTestClient(t, fake)

	err := client.EnsureCollection(context.Background(), "profiles", 768)
	assert.ErrorIs(t, err, vectorindex.ErrUnavailable)
}

func TestUpsertSendsPoints(t *testing.T) {
	fake := &fakeQdrant{collectionDim: 768, pointsCount: 1}
	client := newTestClient(t, fake)

	err := client.Upsert(context.Background(), "profiles", []vectorindex.Point{
		{Id: 0, Vector: []float32{0.1, 0.2}, Payload: map[string]interface{}{"user_id": 1}},
	})
	require.NoError(t, err)

	points, ok := fake.lastUpsert["points"].([]interface{})
	require.True(t, ok)
	require.Len(t, points, 1)
	point := points[0].(map[string]interface{})
	assert.Equal(t, float64(0), point["id"])
}

func TestSearchClampsLimitToIndexedPoints(t *testing.T) {
	fake := &fakeQdrant{collectionDim: 768, pointsCount: 2}
	client := newTestClient(t, fake)

	hits, err := client.Search(context.Background(), "profiles", []float32{0.1}, 50, nil)
	require.NoError(t, err)

	assert.Equal(t, float64(2), fake.lastSearch["limit"])
	require.Len(t, hits, 2)
	assert.Equal(t, int64(1), hits[0].Id)
	assert.InDelta(t, 0.91, hits[0].Score, 1e-9)
}

func TestSearchEmptyIndexReturnsNoHitsWithoutQuerying(t *testing.T) {
	fake := &fakeQdrant{collectionDim: 768, pointsCount: 0}
	client := newTestClient(t, fake)

	hits, err := client.Search(context.Background(), "profiles", []float32{0.1}, 5, nil)
	require.NoError(t, err)
	assert.Empty(t, hits)
	assert.Nil(t, fake.lastSearch)
}

func TestSearchAppliesEqualityFilter(t *testing.T) {
	fake := &fakeQdrant{collectionDim: 768, pointsCount: 2}
	client := newTestClient(t, fake)

	_, err := client.Search(context.Background(), "profiles", []float32{0.1}, 5,
		vectorindex.Filter{"network_id": "net-7"})
	require.NoError(t, err)

	filter, ok := fake.lastSearch["filter"].(map[string]interface{})
	require.True(t, ok)
	must := filter["must"].([]interface{})
	require.Len(t, must, 1)
	clause := must[0].(map[string]interface{})
	assert.Equal(t, "network_id", clause["key"])
}

func TestDeleteSendsIds(t *testing.T) {
	fake := &fakeQdrant{collectionDim: 768, pointsCount: 2}
	client := newTestClient(t, fake)

	require.NoError(t, client.Delete(context.Background(), "profiles", []int64{0, 3}))

	ids := fake.lastDelete["points"].([]interface{})
	assert.Len(t, ids, 2)
}

func TestUnreachableServerReturnsUnavailable(t *testing.T) {
	client := NewClient(Config{URL: "http://127.0.0.1:1"})

	_, err := client.Search(context.Background(), "profiles", []float32{0.1}, 5, nil)
	assert.True(t, errors.Is(err, vectorindex.ErrUnavailable))

	err = client.Upsert(context.Background(), "profiles", []vectorindex.Point{{Id: 0}})
	assert.True(t, errors.Is(err, vectorindex.ErrUnavailable))
}
