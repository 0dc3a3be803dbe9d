package entity

import "time"

// Profile is the enriched, embeddable representation of a member.
// InternalId is the join key between the mapping store (one-based) and the
// vector index (zero-based: point id = InternalId - 1).
type Profile struct {
	InternalId  int64     `json:"internal_id"`
	SourceId    string    `json:"source_id,omitempty"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	Description string    `json:"description,omitempty"`
	Interests   []string  `json:"interests"`
	Skills      []string  `json:"skills"`
	Profession  string    `json:"profession"`
	Location    string    `json:"location,omitempty"`
	NetworkId   string    `json:"network_id,omitempty"`
	ProfileText string    `json:"profile_text"`
	AddedAt     time.Time `json:"added_at"`
}
