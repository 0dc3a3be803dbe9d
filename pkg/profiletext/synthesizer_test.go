package profiletext

import (
	"strings"
	"testing"

	"profile-match-be/internal/entity"
)

func TestSynthesizeFullProfile(t *testing.T) {
	profile := &entity.Profile{
		Name:        "Mary",
		Profession:  "farmer",
		Description: "Organic farmer in Vermont",
		Interests:   []string{"farming", "gardening"},
		Skills:      []string{"agriculture", "composting"},
		Location:    "vermont",
	}

	got := Synthesize(profile)
	want := "Name: Mary\nProfession: farmer\nBio: Organic farmer in Vermont\nInterests: farming, gardening\nSkills: agriculture, composting\nLocation: vermont"
	if got != want {
		t.Errorf("Synthesize() = %q, want %q", got, want)
	}
}

func TestSynthesizeMissingFieldsRenderEmpty(t *testing.T) {
	profile := &entity.Profile{Name: "John"}

	got := Synthesize(profile)

	if strings.Contains(got, "undefined") || strings.Contains(got, "null") || strings.Contains(got, "<nil>") {
		t.Errorf("missing fields leaked placeholders: %q", got)
	}
	want := "Name: John\nProfession: \nBio: \nInterests: \nSkills: \nLocation: "
	if got != want {
		t.Errorf("Synthesize() = %q, want %q", got, want)
	}
}

func TestSynthesizeIsDeterministic(t *testing.T) {
	profile := &entity.Profile{
		Name:      "A",
		Interests: []string{"x", "y"},
		Skills:    []string{"z"},
	}

	first := Synthesize(profile)
	for i := 0; i < 5; i++ {
		if Synthesize(profile) != first {
			t.Fatal("output changed between calls")
		}
	}
}
