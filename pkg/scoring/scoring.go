package scoring

import (
	"fmt"
	"strings"

	"profile-match-be/internal/entity"
)

const (
	interestWeight         = 0.1
	skillWeight            = 0.2
	professionExactBoost   = 0.25
	professionRelatedBoost = 0.15
	locationBoost          = 0.2
	maxScore               = 1.0
)

// Scorer combines raw vector similarity with rule-based boosts for shared
// attributes into the final ranking score and its explanation.
type Scorer struct {
	related []RelatedProfessionEntry
}

func NewScorer(related []RelatedProfessionEntry) *Scorer {
	if related == nil {
		related = DefaultRelatedProfessions()
	}
	return &Scorer{related: related}
}

// Enhance returns rawSimilarity plus interest, skill, profession and
// location boosts, capped at 1.0, together with a human-readable
// explanation of the dimensions that fired.
func (s *Scorer) Enhance(rawSimilarity float64, query, candidate *entity.Profile) (float64, string) {
	commonInterests := countCommon(query.Interests, candidate.Interests)
	commonSkills := countCommon(query.Skills, candidate.Skills)

	score := rawSimilarity
	score += boost(commonInterests, interestWeight, len(query.Interests), len(candidate.Interests))
	score += boost(commonSkills, skillWeight, len(query.Skills), len(candidate.Skills))

	professionScore := s.professionBoost(query.Profession, candidate.Profession)
	score += professionScore

	sameLocation := query.Location != "" && candidate.Location != "" &&
		strings.EqualFold(query.Location, candidate.Location)
	if sameLocation {
		score += locationBoost
	}

	if score > maxScore {
		score = maxScore
	}

	clauses := make([]string, 0, 4)
	if professionScore == professionExactBoost {
		clauses = append(clauses, "same profession")
	} else if professionScore == professionRelatedBoost {
		clauses = append(clauses, "related profession")
	}
	if commonSkills > 0 {
		clauses = append(clauses, fmt.Sprintf("%d common skills", commonSkills))
	}
	if commonInterests > 0 {
		clauses = append(clauses, fmt.Sprintf("%d shared interests", commonInterests))
	}
	if sameLocation {
		clauses = append(clauses, "same location")
	}

	explanation := fmt.Sprintf("%.0f%% match", rawSimilarity*100)
	if len(clauses) > 0 {
		explanation += ": " + strings.Join(clauses, ", ")
	}

	return score, explanation
}

// boost computes n * weight * (1 + n / max(1, min(lenA, lenB))): the more
// of the smaller list is shared, the stronger the extra multiplier.
func boost(common int, weight float64, lenA, lenB int) float64 {
	if common == 0 {
		return 0
	}
	smaller := lenA
	if lenB < smaller {
		smaller = lenB
	}
	if smaller < 1 {
		smaller = 1
	}
	return float64(common) * weight * (1 + float64(common)/float64(smaller))
}

func (s *Scorer) professionBoost(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return professionExactBoost
	}
	for _, entry := range s.related {
		for _, rel := range entry.Related {
			if (overlaps(a, entry.Profession) && overlaps(b, rel)) ||
				(overlaps(b, entry.Profession) && overlaps(a, rel)) {
				return professionRelatedBoost
			}
		}
	}
	return 0
}

// overlaps reports substring containment in either direction.
func overlaps(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func countCommon(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]bool, len(a))
	for _, item := range a {
		set[strings.ToLower(strings.TrimSpace(item))] = true
	}
	count := 0
	seen := make(map[string]bool, len(b))
	for _, item := range b {
		key := strings.ToLower(strings.TrimSpace(item))
		if set[key] && !seen[key] {
			seen[key] = true
			count++
		}
	}
	return count
}
