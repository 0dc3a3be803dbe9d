package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"profile-match-be/internal/entity"
)

// MappingStore owns the in-memory internal id -> Profile table and its
// snapshot file. Ids are one-based and monotonically allocated; the next-id
// counter is serialized behind the store mutex so concurrent ingests cannot
// race. Save writes the whole mapping to a temp file and renames it, so a
// concurrent reader never observes a partial snapshot.
type MappingStore struct {
	mu       sync.Mutex
	profiles map[int64]*entity.Profile
	nextId   int64
	filePath string
}

func NewMappingStore(filePath string) *MappingStore {
	return &MappingStore{
		profiles: make(map[int64]*entity.Profile),
		nextId:   1,
		filePath: filePath,
	}
}

// Load reads the snapshot if present and restores id continuity:
// next id = max existing id + 1, or 1 for an absent/empty snapshot.
func (s *MappingStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read snapshot %s: %w", s.filePath, err)
	}
	if len(data) == 0 {
		return nil
	}

	// Snapshot format: JSON object keyed by decimal internal id.
	// Unknown fields are ignored, missing optional fields stay zero.
	raw := make(map[string]*entity.Profile)
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse snapshot %s: %w", s.filePath, err)
	}

	s.profiles = make(map[int64]*entity.Profile, len(raw))
	var maxId int64
	for key, profile := range raw {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		profile.InternalId = id
		s.profiles[id] = profile
		if id > maxId {
			maxId = id
		}
	}
	s.nextId = maxId + 1
	return nil
}

// Save serializes the full mapping and atomically replaces the snapshot.
func (s *MappingStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw := make(map[string]*entity.Profile, len(s.profiles))
	for id, profile := range s.profiles {
		raw[strconv.FormatInt(id, 10)] = profile
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if dir := filepath.Dir(s.filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}

	tmpPath := s.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, s.filePath); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Allocate returns the next unused internal id.
func (s *MappingStore) Allocate() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextId
	s.nextId++
	return id
}

func (s *MappingStore) Get(id int64) (*entity.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[id]
	return profile, ok
}

func (s *MappingStore) Put(id int64, profile *entity.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[id] = profile
}

func (s *MappingStore) Remove(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[id]; !ok {
		return false
	}
	delete(s.profiles, id)
	return true
}

// All returns a copy of the mapping keyed by decimal id, matching the
// snapshot layout. Profiles are cloned so callers cannot mutate store
// state behind the mutex.
func (s *MappingStore) All() map[string]*entity.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]*entity.Profile, len(s.profiles))
	for id, profile := range s.profiles {
		out[strconv.FormatInt(id, 10)] = cloneProfile(profile)
	}
	return out
}

func cloneProfile(p *entity.Profile) *entity.Profile {
	clone := *p
	clone.Interests = append([]string(nil), p.Interests...)
	clone.Skills = append([]string(nil), p.Skills...)
	return &clone
}

func (s *MappingStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.profiles)
}
