package scoring

// RelatedProfessionEntry groups a profession with titles considered close
// enough to earn the related-profession boost. Matching is substring
// containment in either direction, so "senior developer" still pairs with
// "software engineer".
type RelatedProfessionEntry struct {
	Profession string
	Related    []string
}

// DefaultRelatedProfessions is plain configuration data; extend it without
// touching the scoring algorithm.
func DefaultRelatedProfessions() []RelatedProfessionEntry {
	return []RelatedProfessionEntry{
		{Profession: "software engineer", Related: []string{"developer", "programmer", "coder"}},
		{Profession: "data scientist", Related: []string{"analyst", "statistician", "machine learning engineer"}},
		{Profession: "designer", Related: []string{"artist", "illustrator", "ux researcher"}},
		{Profession: "teacher", Related: []string{"professor", "tutor", "educator"}},
		{Profession: "doctor", Related: []string{"nurse", "surgeon", "physician"}},
		{Profession: "lawyer", Related: []string{"paralegal", "attorney"}},
		{Profession: "writer", Related: []string{"journalist", "editor", "author"}},
		{Profession: "marketing specialist", Related: []string{"advertiser", "brand manager"}},
		{Profession: "farmer", Related: []string{"gardener", "rancher"}},
	}
}
