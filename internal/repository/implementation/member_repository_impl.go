package implementation

import (
	"context"

	"profile-match-be/internal/entity"
	"profile-match-be/internal/mapper"
	"profile-match-be/internal/model"
	"profile-match-be/internal/repository/contract"

	"gorm.io/gorm"
)

type MemberRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MemberMapper
}

func NewMemberRepository(db *gorm.DB) contract.MemberRepository {
	return &MemberRepositoryImpl{
		db:     db,
		mapper: mapper.NewMemberMapper(),
	}
}

func (r *MemberRepositoryImpl) FindActive(ctx context.Context, limit int) ([]*entity.Member, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []*model.Member
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	members := make([]*entity.Member, len(rows))
	for i, row := range rows {
		members[i] = r.mapper.ToEntity(row)
	}
	return members, nil
}

func (r *MemberRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Member{}).Count(&count).Error
	return count, err
}
