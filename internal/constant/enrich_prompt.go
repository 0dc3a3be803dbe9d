package constant

const (
	SkillExtractionSystemPrompt = `You are a profile analyst. Given a member's bio and interests, list the concrete professional or technical skills they have.
Respond with a single comma-separated list of short lower-case skill names and nothing else.
Example: python, project management, graphic design`

	ProfessionExtractionSystemPrompt = `You are a profile analyst. Given a member's bio and interests, name the single job title that best fits them.
Respond with the job title only, in lower case, and nothing else.
Example: software engineer`
)
