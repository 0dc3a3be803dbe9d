package entity

import (
	"time"

	"github.com/google/uuid"
)

// Member is a raw profile row from the upstream relational store, before
// enrichment.
type Member struct {
	Id        uuid.UUID
	Name      string
	Email     string
	Bio       string
	Interests []string
	Location  string
	IsActive  bool
	CreatedAt time.Time
}
