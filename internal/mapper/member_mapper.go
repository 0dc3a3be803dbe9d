package mapper

import (
	"encoding/json"

	"profile-match-be/internal/entity"
	"profile-match-be/internal/model"

	"gorm.io/datatypes"
)

type MemberMapper struct{}

func NewMemberMapper() *MemberMapper {
	return &MemberMapper{}
}

func (m *MemberMapper) ToEntity(row *model.Member) *entity.Member {
	interests := make([]string, 0)
	if len(row.Interests) > 0 {
		// Malformed JSON leaves interests empty rather than failing the read
		_ = json.Unmarshal(row.Interests, &interests)
	}

	return &entity.Member{
		Id:        row.Id,
		Name:      row.Name,
		Email:     row.Email,
		Bio:       row.Bio,
		Interests: interests,
		Location:  row.Location,
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt,
	}
}

func (m *MemberMapper) ToModel(member *entity.Member) *model.Member {
	interestsJson, _ := json.Marshal(member.Interests)

	return &model.Member{
		Id:        member.Id,
		Name:      member.Name,
		Email:     member.Email,
		Bio:       member.Bio,
		Interests: datatypes.JSON(interestsJson),
		Location:  member.Location,
		IsActive:  member.IsActive,
		CreatedAt: member.CreatedAt,
	}
}
