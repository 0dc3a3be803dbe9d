package enrich

import (
	"context"
	"errors"
	"testing"

	"profile-match-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLLM replays canned chat responses in order.
type fakeLLM struct {
	responses []string
	err       error
	calls     int
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.calls >= len(f.responses) {
		return "", errors.New("no more responses")
	}
	res := f.responses[f.calls]
	f.calls++
	return res, nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func TestLLMEnricherParsesResponses(t *testing.T) {
	provider := &fakeLLM{responses: []string{
		"Python, SQL , machine learning,, Go",
		"Software Engineer\nBecause the bio mentions coding.",
	}}
	e := NewLLMEnricher(provider)

	res, err := e.Enrich(context.Background(), "I write services in Go.", []string{"coding"})
	require.NoError(t, err)

	assert.Equal(t, []string{"python", "sql", "machine learning", "go"}, res.Skills)
	assert.Equal(t, "software engineer", res.Profession)
}

func TestLLMEnricherFailsOnProviderError(t *testing.T) {
	e := NewLLMEnricher(&fakeLLM{err: errors.New("timeout")})

	_, err := e.Enrich(context.Background(), "bio", nil)
	assert.Error(t, err)
}

func TestChainFallsBackOnRemoteFailure(t *testing.T) {
	remote := NewLLMEnricher(&fakeLLM{err: errors.New("service down")})
	chain := NewChainEnricher(remote, NewHeuristicEnricher(nil))

	res, err := chain.Enrich(context.Background(), "I am a farmer. I grow vegetables.", []string{"farming"})
	require.NoError(t, err)

	assert.Equal(t, "farmer", res.Profession)
	assert.Contains(t, res.Skills, "farming")
}

func TestChainPrefersRemoteResult(t *testing.T) {
	remote := NewLLMEnricher(&fakeLLM{responses: []string{"kubernetes", "platform engineer"}})
	chain := NewChainEnricher(remote, NewHeuristicEnricher(nil))

	res, err := chain.Enrich(context.Background(), "I run clusters.", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"kubernetes"}, res.Skills)
	assert.Equal(t, "platform engineer", res.Profession)
}

func TestChainFallbackIsDeterministic(t *testing.T) {
	chain := NewChainEnricher(
		NewLLMEnricher(&fakeLLM{err: errors.New("always down")}),
		NewHeuristicEnricher(nil),
	)

	first, err := chain.Enrich(context.Background(), "Experienced accountant, skilled in budgeting.", []string{"finance"})
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := chain.Enrich(context.Background(), "Experienced accountant, skilled in budgeting.", []string{"finance"})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
