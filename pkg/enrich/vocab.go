package enrich

// DefaultProfession is returned when no profession signal is found.
const DefaultProfession = "professional"

// ProfessionEntry maps a canonical profession label to the keywords that
// imply it. First matching entry wins, so order matters.
type ProfessionEntry struct {
	Label    string
	Keywords []string
}

// Vocabulary is the hand-curated table set driving the heuristic enricher.
// It is plain data so deployments can extend coverage without touching the
// matching algorithms.
type Vocabulary struct {
	SkillKeywords []string
	Professions   []ProfessionEntry
}

func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		SkillKeywords: []string{
			// programming
			"python", "javascript", "typescript", "java", "golang", "rust",
			"c++", "sql", "html", "css", "react", "node.js", "django",
			// data & ai
			"machine learning", "deep learning", "data science",
			"data analysis", "artificial intelligence", "statistics",
			// cloud & infrastructure
			"cloud computing", "aws", "azure", "gcp", "devops", "docker",
			"kubernetes", "linux", "networking", "cybersecurity", "databases",
			// process
			"testing", "agile", "scrum", "project management",
			"product management", "leadership",
			// communication & creative
			"communication", "public speaking", "writing", "editing",
			"graphic design", "ui design", "ux design", "photography",
			"video editing", "animation", "illustration",
			// marketing & business
			"marketing", "seo", "social media", "content creation",
			"copywriting", "sales", "negotiation",
			// finance
			"accounting", "finance", "budgeting", "investing", "economics",
			// other trades
			"teaching", "research", "carpentry", "plumbing", "cooking",
			"gardening", "farming", "agriculture",
		},
		Professions: []ProfessionEntry{
			{Label: "software engineer", Keywords: []string{"software engineer", "web developer", "developer", "programmer", "coder", "coding"}},
			{Label: "data scientist", Keywords: []string{"data scientist", "data science", "machine learning", "data analyst"}},
			{Label: "designer", Keywords: []string{"designer", "ux", "ui", "graphic design"}},
			{Label: "marketing specialist", Keywords: []string{"marketing", "seo", "advertising"}},
			{Label: "teacher", Keywords: []string{"teacher", "professor", "educator", "tutor"}},
			{Label: "financial analyst", Keywords: []string{"financial analyst", "accountant", "accounting", "finance", "investment"}},
			{Label: "doctor", Keywords: []string{"doctor", "physician", "nurse", "medical"}},
			{Label: "lawyer", Keywords: []string{"lawyer", "attorney", "legal"}},
			{Label: "farmer", Keywords: []string{"farmer", "farming", "agriculture"}},
			{Label: "writer", Keywords: []string{"writer", "journalist", "author", "blogger"}},
			{Label: "entrepreneur", Keywords: []string{"entrepreneur", "founder", "startup"}},
			{Label: "manager", Keywords: []string{"manager", "management"}},
		},
	}
}
