package memory

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"profile-match-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *MappingStore {
	t.Helper()
	return NewMappingStore(filepath.Join(t.TempDir(), "users.json"))
}

func TestAllocateSequentialIds(t *testing.T) {
	store := newTestStore(t)

	for want := int64(1); want <= 10; want++ {
		got := store.Allocate()
		if got != want {
			t.Fatalf("Allocate() = %d, want %d", got, want)
		}
		store.Put(got, &entity.Profile{InternalId: got, Name: "p"})
	}

	assert.Equal(t, 10, store.Count())
}

func TestLoadMissingSnapshotStartsAtOne(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Load())
	assert.Equal(t, int64(1), store.Allocate())
	assert.Equal(t, 0, store.Count())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	store := NewMappingStore(path)

	addedAt := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	original := &entity.Profile{
		InternalId:  store.Allocate(),
		SourceId:    "src-1",
		Name:        "Mary",
		Email:       "mary@example.com",
		Description: "Organic farmer",
		Interests:   []string{"farming", "gardening"},
		Skills:      []string{"agriculture"},
		Profession:  "farmer",
		Location:    "vermont",
		ProfileText: "Name: Mary\nProfession: farmer",
		AddedAt:     addedAt,
	}
	store.Put(original.InternalId, original)
	store.Put(store.Allocate(), &entity.Profile{InternalId: 2, Name: "John"})

	require.NoError(t, store.Save())

	reloaded := NewMappingStore(path)
	require.NoError(t, reloaded.Load())

	assert.Equal(t, 2, reloaded.Count())

	got, ok := reloaded.Get(1)
	require.True(t, ok)
	assert.Equal(t, original.Name, got.Name)
	assert.Equal(t, original.Interests, got.Interests)
	assert.Equal(t, original.Skills, got.Skills)
	assert.Equal(t, original.Profession, got.Profession)
	assert.Equal(t, original.ProfileText, got.ProfileText)
	assert.True(t, original.AddedAt.Equal(got.AddedAt))

	// Id continuity: next allocation continues after the highest saved id
	assert.Equal(t, int64(3), reloaded.Allocate())
}

func TestLoadToleratesUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	snapshot := `{"7": {"name": "Ada", "profession": "engineer", "future_field": {"nested": true}}}`
	require.NoError(t, os.WriteFile(path, []byte(snapshot), 0o644))

	store := NewMappingStore(path)
	require.NoError(t, store.Load())

	got, ok := store.Get(7)
	require.True(t, ok)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, int64(7), got.InternalId)
	assert.Equal(t, int64(8), store.Allocate())
}

func TestRemove(t *testing.T) {
	store := newTestStore(t)
	id := store.Allocate()
	store.Put(id, &entity.Profile{InternalId: id, Name: "gone"})

	assert.True(t, store.Remove(id))
	assert.False(t, store.Remove(id))

	_, ok := store.Get(id)
	assert.False(t, ok)
}

func TestSaveIsAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	store := NewMappingStore(path)
	store.Put(store.Allocate(), &entity.Profile{InternalId: 1, Name: "a"})
	require.NoError(t, store.Save())

	// No temp file left behind after a successful save
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestAllReturnsDetachedCopies(t *testing.T) {
	store := newTestStore(t)

	id := store.Allocate()
	store.Put(id, &entity.Profile{
		InternalId: id,
		Name:       "Mary",
		Interests:  []string{"gardening"},
		Skills:     []string{"farming"},
	})

	dump := store.All()
	dump["1"].Name = "changed"
	dump["1"].Interests[0] = "changed"
	dump["1"].Skills[0] = "changed"

	stored, ok := store.Get(id)
	require.True(t, ok)
	assert.Equal(t, "Mary", stored.Name)
	assert.Equal(t, []string{"gardening"}, stored.Interests)
	assert.Equal(t, []string{"farming"}, stored.Skills)
}
