package enrich

import (
	"context"
	"log"
	"strings"
)

// Result holds the attributes derived from a free-text profile.
type Result struct {
	Skills     []string
	Profession string
}

// Enricher derives skills and a profession from a bio and interest list.
// Implementations that can fail (remote ones) return an error so a chain
// can fall back; the chain itself never surfaces one.
type Enricher interface {
	Enrich(ctx context.Context, description string, interests []string) (*Result, error)
}

// ChainEnricher tries the remote enricher first and falls back to the
// deterministic one on any failure or empty result. It never returns an
// error: the worst case is the fallback's default profession label.
type ChainEnricher struct {
	remote   Enricher
	fallback Enricher
}

func NewChainEnricher(remote, fallback Enricher) *ChainEnricher {
	return &ChainEnricher{remote: remote, fallback: fallback}
}

func (c *ChainEnricher) Enrich(ctx context.Context, description string, interests []string) (*Result, error) {
	if c.remote != nil {
		res, err := c.remote.Enrich(ctx, description, interests)
		if err == nil && res != nil && (len(res.Skills) > 0 || res.Profession != "") {
			return res, nil
		}
		if err != nil {
			log.Printf("[WARN] Remote enrichment failed, using heuristic fallback: %v", err)
		}
	}

	res, err := c.fallback.Enrich(ctx, description, interests)
	if err != nil {
		// The heuristic enricher cannot fail; guard anyway
		return &Result{Skills: []string{}, Profession: DefaultProfession}, nil
	}
	return res, nil
}

// combineText builds the single lower-cased text block both tiers analyze.
func combineText(description string, interests []string) string {
	parts := make([]string, 0, 2)
	if description != "" {
		parts = append(parts, description)
	}
	if len(interests) > 0 {
		parts = append(parts, "Interests: "+strings.Join(interests, ", "))
	}
	return strings.ToLower(strings.Join(parts, "\n"))
}

// parseCommaList splits, trims, lower-cases and drops empties.
func parseCommaList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]bool)
	for _, part := range parts {
		item := strings.ToLower(strings.TrimSpace(part))
		item = strings.Trim(item, ".")
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
