package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"profile-match-be/pkg/vectorindex"
)

// Client is a minimal REST client to Qdrant. Collections use cosine
// distance; every failure surfaces as vectorindex.ErrUnavailable so callers
// can tell an index outage apart from an empty result.
type Client struct {
	url    string
	apiKey string
	client *http.Client
}

type Config struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

var _ vectorindex.Client = &Client{}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		client: &http.Client{Timeout: timeout},
	}
}

func (c *Client) EnsureCollection(ctx context.Context, name string, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("%w: invalid dimension %d", vectorindex.ErrUnavailable, dimension)
	}

	var info struct {
		Result struct {
			Config struct {
				Params struct {
					Vectors struct {
						Size int `json:"size"`
					} `json:"vectors"`
				} `json:"params"`
			} `json:"config"`
		} `json:"result"`
	}
	status, err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/collections/%s", c.url, name), nil, &info)
	if err != nil {
		return err
	}
	if status == http.StatusOK {
		if got := info.Result.Config.Params.Vectors.Size; got != 0 && got != dimension {
			return fmt.Errorf("%w: collection %s has dimension %d, want %d", vectorindex.ErrUnavailable, name, got, dimension)
		}
		return nil
	}

	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	status, err = c.doJSON(ctx, http.MethodPut, fmt.Sprintf("%s/collections/%s", c.url, name), body, nil)
	if err != nil {
		return err
	}
	if status >= 300 {
		return fmt.Errorf("%w: create collection %s returned status %d", vectorindex.ErrUnavailable, name, status)
	}
	return nil
}

func (c *Client) Upsert(ctx context.Context, collection string, points []vectorindex.Point) error {
	if len(points) == 0 {
		return nil
	}
	qdrantPoints := make([]map[string]any, len(points))
	for i, p := range points {
		qdrantPoints[i] = map[string]any{
			"id":      p.Id,
			"vector":  p.Vector,
			"payload": p.Payload,
		}
	}
	body := map[string]any{"points": qdrantPoints}
	url := fmt.Sprintf("%s/collections/%s/points?wait=true", c.url, collection)

	status, err := c.doJSON(ctx, http.MethodPut, url, body, nil)
	if err != nil {
		return err
	}
	if status >= 300 {
		return fmt.Errorf("%w: upsert returned status %d", vectorindex.ErrUnavailable, status)
	}
	return nil
}

func (c *Client) Search(ctx context.Context, collection string, vector []float32, limit int, filter vectorindex.Filter) ([]vectorindex.SearchHit, error) {
	total, err := c.Count(ctx, collection)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return []vectorindex.SearchHit{}, nil
	}

	body := map[string]any{
		"vector":       vector,
		"limit":        vectorindex.ClampLimit(limit, total),
		"with_payload": false,
	}
	if len(filter) > 0 {
		must := make([]map[string]any, 0, len(filter))
		for key, value := range filter {
			must = append(must, map[string]any{
				"key":   key,
				"match": map[string]any{"value": value},
			})
		}
		body["filter"] = map[string]any{"must": must}
	}

	var resp struct {
		Result []struct {
			Id    int64   `json:"id"`
			Score float64 `json:"score"`
		} `json:"result"`
	}
	url := fmt.Sprintf("%s/collections/%s/points/search", c.url, collection)
	status, err := c.doJSON(ctx, http.MethodPost, url, body, &resp)
	if err != nil {
		return nil, err
	}
	if status >= 300 {
		return nil, fmt.Errorf("%w: search returned status %d", vectorindex.ErrUnavailable, status)
	}

	hits := make([]vectorindex.SearchHit, len(resp.Result))
	for i, r := range resp.Result {
		hits[i] = vectorindex.SearchHit{Id: r.Id, Score: r.Score}
	}
	return hits, nil
}

func (c *Client) Delete(ctx context.Context, collection string, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	body := map[string]any{"points": ids}
	url := fmt.Sprintf("%s/collections/%s/points/delete?wait=true", c.url, collection)

	status, err := c.doJSON(ctx, http.MethodPost, url, body, nil)
	if err != nil {
		return err
	}
	if status >= 300 {
		return fmt.Errorf("%w: delete returned status %d", vectorindex.ErrUnavailable, status)
	}
	return nil
}

func (c *Client) Count(ctx context.Context, collection string) (int, error) {
	var resp struct {
		Result struct {
			PointsCount int `json:"points_count"`
		} `json:"result"`
	}
	url := fmt.Sprintf("%s/collections/%s", c.url, collection)
	status, err := c.doJSON(ctx, http.MethodGet, url, nil, &resp)
	if err != nil {
		return 0, err
	}
	if status >= 300 {
		return 0, fmt.Errorf("%w: collection info returned status %d", vectorindex.ErrUnavailable, status)
	}
	return resp.Result.PointsCount, nil
}

// doJSON sends a request with the optional JSON body and decodes the
// response into out when provided. Transport errors wrap ErrUnavailable;
// HTTP status handling is left to the caller except for 404 on GET, which
// is returned as-is so EnsureCollection can distinguish "absent".
func (c *Client) doJSON(ctx context.Context, method, url string, body any, out any) (int, error) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("%w: marshal request: %v", vectorindex.ErrUnavailable, err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, fmt.Errorf("%w: create request: %v", vectorindex.ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", vectorindex.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("%w: decode response: %v", vectorindex.ErrUnavailable, err)
		}
	}
	return resp.StatusCode, nil
}
