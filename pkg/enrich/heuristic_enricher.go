package enrich

import (
	"context"
	"regexp"
	"strings"
)

var (
	// "skilled in X", "expert with X", "proficient at X", "experience in X"
	skillPhrasePattern = regexp.MustCompile(`(?:skilled|expert|proficient|experienced?)\s+(?:in|with|at)\s+([a-z0-9+#./\- ]+)`)

	// "I am a X", "I'm a X", "working as a X", "employed as a X",
	// "profession is X", "career as a X"
	professionPhrasePattern = regexp.MustCompile(`(?:i am an?|i'm an?|working as an?|employed as an?|profession is|career as an?)\s+([a-z ]+?)(?:[.,;\n]|$)`)
)

// HeuristicEnricher is the deterministic local fallback: a keyword scan over
// a fixed vocabulary plus phrase-pattern extraction. Same input always
// produces the same output, and it never fails.
type HeuristicEnricher struct {
	vocab *Vocabulary
}

func NewHeuristicEnricher(vocab *Vocabulary) *HeuristicEnricher {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return &HeuristicEnricher{vocab: vocab}
}

func (e *HeuristicEnricher) Enrich(ctx context.Context, description string, interests []string) (*Result, error) {
	combined := combineText(description, interests)

	return &Result{
		Skills:     e.extractSkills(combined),
		Profession: e.extractProfession(combined),
	}, nil
}

func (e *HeuristicEnricher) extractSkills(text string) []string {
	skills := make([]string, 0)
	seen := make(map[string]bool)

	add := func(skill string) {
		skill = strings.TrimSpace(skill)
		if skill == "" || seen[skill] {
			return
		}
		seen[skill] = true
		skills = append(skills, skill)
	}

	for _, keyword := range e.vocab.SkillKeywords {
		if strings.Contains(text, keyword) {
			add(keyword)
		}
	}

	for _, match := range skillPhrasePattern.FindAllStringSubmatch(text, -1) {
		phrase := match[1]
		// Keep the trailing tokens up to the first natural break
		if idx := strings.IndexAny(phrase, ".,;"); idx >= 0 {
			phrase = phrase[:idx]
		}
		words := strings.Fields(phrase)
		if len(words) > 3 {
			words = words[:3]
		}
		add(strings.Join(words, " "))
	}

	return skills
}

func (e *HeuristicEnricher) extractProfession(text string) string {
	if match := professionPhrasePattern.FindStringSubmatch(text); match != nil {
		role := strings.TrimSpace(match[1])
		// Cut trailing qualifiers like "paralegal in boston"
		for _, stop := range []string{" in ", " at ", " from ", " for ", " with ", " based "} {
			if idx := strings.Index(role+" ", stop); idx >= 0 {
				role = role[:idx]
			}
		}
		role = strings.TrimSpace(role)
		if role != "" {
			return role
		}
	}

	for _, entry := range e.vocab.Professions {
		for _, keyword := range entry.Keywords {
			if strings.Contains(text, keyword) {
				return entry.Label
			}
		}
	}

	return DefaultProfession
}
