package contract

import (
	"context"

	"profile-match-be/internal/entity"
)

// MemberRepository reads raw profile rows from the upstream relational store.
type MemberRepository interface {
	// FindActive returns up to limit active members, oldest first.
	FindActive(ctx context.Context, limit int) ([]*entity.Member, error)
	Count(ctx context.Context) (int64, error)
}
