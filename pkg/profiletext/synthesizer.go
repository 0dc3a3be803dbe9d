package profiletext

import (
	"strings"

	"profile-match-be/internal/entity"
)

// Synthesize renders a profile into the canonical text block used as the
// embedding input. The layout is fixed: changing it invalidates the meaning
// of every vector already stored in the index. Missing fields render as
// empty segments, never as a literal placeholder.
func Synthesize(profile *entity.Profile) string {
	var b strings.Builder

	b.WriteString("Name: ")
	b.WriteString(profile.Name)
	b.WriteString("\nProfession: ")
	b.WriteString(profile.Profession)
	b.WriteString("\nBio: ")
	b.WriteString(profile.Description)
	b.WriteString("\nInterests: ")
	b.WriteString(strings.Join(profile.Interests, ", "))
	b.WriteString("\nSkills: ")
	b.WriteString(strings.Join(profile.Skills, ", "))
	b.WriteString("\nLocation: ")
	b.WriteString(profile.Location)

	return b.String()
}
