package enrich

import (
	"context"
	"fmt"
	"strings"

	"profile-match-be/internal/constant"
	"profile-match-be/pkg/llm"
)

// LLMEnricher asks the text-generation capability for skills and a
// profession via two prompts with fixed system instructions.
type LLMEnricher struct {
	provider llm.LLMProvider
}

func NewLLMEnricher(provider llm.LLMProvider) *LLMEnricher {
	return &LLMEnricher{provider: provider}
}

func (e *LLMEnricher) Enrich(ctx context.Context, description string, interests []string) (*Result, error) {
	combined := combineText(description, interests)
	if combined == "" {
		return nil, fmt.Errorf("nothing to enrich")
	}

	skillsRaw, err := e.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: constant.SkillExtractionSystemPrompt},
		{Role: "user", Content: combined},
	}, llm.WithTemperature(0.2))
	if err != nil {
		return nil, fmt.Errorf("skill extraction: %w", err)
	}

	professionRaw, err := e.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: constant.ProfessionExtractionSystemPrompt},
		{Role: "user", Content: combined},
	}, llm.WithTemperature(0.2))
	if err != nil {
		return nil, fmt.Errorf("profession extraction: %w", err)
	}

	skills := parseCommaList(skillsRaw)
	profession := cleanProfession(professionRaw)

	if len(skills) == 0 && profession == "" {
		return nil, fmt.Errorf("empty enrichment result")
	}

	return &Result{
		Skills:     skills,
		Profession: profession,
	}, nil
}

// cleanProfession keeps the first line of the model output, lower-cased.
// Models occasionally prefix a label or append an explanation.
func cleanProfession(raw string) string {
	line := raw
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	line = strings.ToLower(strings.TrimSpace(line))
	line = strings.Trim(line, ".\"'")
	return line
}
